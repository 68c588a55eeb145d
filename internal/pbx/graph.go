package pbx

import (
	"errors"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
)

// Edge is one outgoing reference of an object.
type Edge struct {
	Field string
	Cell  *objectref.Cell
}

// References returns the outgoing references of obj in key order, followed
// by the references held in project attributes and project references.
func References(obj Object) []Edge {
	v := structValue(obj)
	var out []Edge
	for _, f := range fieldsOf(v.Type()) {
		switch f.codec {
		case codecRef:
			if c, _ := v.FieldByIndex(f.index).Interface().(*objectref.Cell); c != nil {
				out = append(out, Edge{Field: f.key, Cell: c})
			}
		case codecRefs:
			for _, c := range v.FieldByIndex(f.index).Interface().([]*objectref.Cell) {
				if c != nil {
					out = append(out, Edge{Field: f.key, Cell: c})
				}
			}
		}
	}
	if p, ok := obj.(*Project); ok {
		for _, ta := range p.TargetAttributes {
			if ta.Target != nil {
				out = append(out, Edge{Field: "attributes.TargetAttributes", Cell: ta.Target})
			}
			if ta.TestTarget != nil {
				out = append(out, Edge{Field: "attributes.TargetAttributes.TestTargetID", Cell: ta.TestTarget})
			}
		}
		for _, ref := range p.ProjectReferences {
			for _, c := range []*objectref.Cell{ref.ProductGroup, ref.ProjectRef} {
				if c != nil {
					out = append(out, Edge{Field: "projectReferences", Cell: c})
				}
			}
		}
	}
	return out
}

// Unreachable returns the objects that no chain of references from the root
// object reaches, sorted by id.
func (d *Document) Unreachable() ([]Object, error) {
	seen := map[*objectref.Cell]bool{d.root: true}
	queue := []*objectref.Cell{d.root}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		obj, err := Resolve(c)
		if errors.Is(err, objectref.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range References(obj) {
			if !seen[e.Cell] {
				seen[e.Cell] = true
				queue = append(queue, e.Cell)
			}
		}
	}

	var out []Object
	for _, obj := range d.Objects() {
		if !seen[obj.Cell()] {
			out = append(out, obj)
		}
	}
	return out, nil
}

// DanglingReference is a reference whose target is not in the document.
type DanglingReference struct {
	From  Object
	Field string
	ID    objectid.ID
}

// DanglingReferences lists references that resolve to nothing, ordered by
// referring object id. Remote ids of proxies into other project files are
// not checked.
func (d *Document) DanglingReferences() ([]DanglingReference, error) {
	var out []DanglingReference
	for _, obj := range d.Objects() {
		external := false
		if proxy, ok := obj.(*ContainerItemProxy); ok {
			external = proxy.ContainerPortal != d.root
		}
		for _, e := range References(obj) {
			if external && e.Field == "remoteGlobalIDString" {
				continue
			}
			_, err := Resolve(e.Cell)
			switch {
			case err == nil:
			case errors.Is(err, objectref.ErrObjectNotFound):
				out = append(out, DanglingReference{From: obj, Field: e.Field, ID: e.Cell.ID()})
			default:
				return nil, err
			}
		}
	}
	return out, nil
}
