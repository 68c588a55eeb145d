package pbx

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/vk/pbxproj/internal/inmemorystore"
	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/objectstore"
	"github.com/vk/pbxproj/internal/plist"
)

// decodeHook is implemented by kinds with fields the tag codec cannot
// express. It returns the record keys it consumed.
type decodeHook interface {
	decodeExtra(rec *plist.Dict, d *decoder) ([]string, error)
}

type decoder struct {
	store   objectstore.Store
	cells   map[objectid.ID]*objectref.Cell
	pending []func()
}

// cellFor returns the one shared cell for an id, creating a detached cell for
// ids that name no record.
func (d *decoder) cellFor(id objectid.ID) *objectref.Cell {
	if c, ok := d.cells[id]; ok {
		return c
	}
	c := objectref.New(d.store, id)
	d.cells[id] = c
	return c
}

// later queues work for the resolution phase.
func (d *decoder) later(fn func()) {
	d.pending = append(d.pending, fn)
}

// Decode builds a document from the parsed top-level dictionary of a project
// file.
func Decode(root *plist.Dict) (*Document, error) {
	header := make(map[string]string, 3)
	for _, key := range []string{"archiveVersion", "objectVersion", "rootObject"} {
		v, ok := root.String(key)
		if !ok {
			return nil, fmt.Errorf("%w: top-level key %q missing or not a string", ErrMalformedDocument, key)
		}
		header[key] = v
	}
	classes, err := topLevelDict(root, "classes")
	if err != nil {
		return nil, err
	}
	objects, err := topLevelDict(root, "objects")
	if err != nil {
		return nil, err
	}

	d := &decoder{
		store: inmemorystore.New(),
		cells: make(map[objectid.ID]*objectref.Cell, objects.Len()),
	}

	// Phase 1: materialize every record.
	for _, rawID := range objects.Keys() {
		v, _ := objects.Get(rawID)
		rec, ok := v.(*plist.Dict)
		if !ok {
			return nil, &DecodeError{ObjectID: rawID, Err: fmt.Errorf("%w: record is not a dictionary", ErrMalformedDocument)}
		}
		if err := d.materialize(rawID, rec); err != nil {
			return nil, err
		}
	}

	// Phase 2: resolve raw identifiers into shared cells.
	for _, fn := range d.pending {
		fn()
	}

	rootID, err := objectid.Parse(header["rootObject"])
	if err != nil {
		return nil, fmt.Errorf("%w: rootObject: %v", ErrMalformedDocument, err)
	}
	doc := &Document{
		ArchiveVersion: header["archiveVersion"],
		ObjectVersion:  header["objectVersion"],
		Classes:        classes,
		Name:           "Project",
		store:          d.store,
		root:           d.cellFor(rootID),
	}
	if _, err := doc.Project(); err != nil {
		return nil, fmt.Errorf("%w: rootObject %s: %v", ErrMalformedDocument, rootID, err)
	}
	doc.linkParents()
	return doc, nil
}

func topLevelDict(root *plist.Dict, key string) (*plist.Dict, error) {
	v, ok := root.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: top-level key %q missing", ErrMalformedDocument, key)
	}
	d, ok := v.(*plist.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: top-level key %q is not a dictionary", ErrMalformedDocument, key)
	}
	return d, nil
}

func (d *decoder) materialize(rawID string, rec *plist.Dict) error {
	isa, ok := rec.String("isa")
	if !ok {
		return &DecodeError{ObjectID: rawID, Field: "isa", Err: ErrMissingField}
	}
	obj, ok := NewObject(isa)
	if !ok {
		return &DecodeError{ObjectID: rawID, Kind: isa, Err: fmt.Errorf("%w: %s", ErrUnknownObjectKind, isa)}
	}
	id, err := objectid.Parse(rawID)
	if err != nil {
		return &DecodeError{ObjectID: rawID, Kind: isa, Err: fmt.Errorf("%w: %v", ErrInvalidField, err)}
	}

	obj.base().cell = d.cellFor(id)
	consumed, ferr := d.decodeFields(obj, rec)
	if ferr != nil {
		return &DecodeError{ObjectID: rawID, Kind: isa, Field: ferr.field, Err: ferr.err}
	}
	if hook, ok := obj.(decodeHook); ok {
		keys, err := hook.decodeExtra(rec, d)
		if err != nil {
			return &DecodeError{ObjectID: rawID, Kind: isa, Err: err}
		}
		for _, k := range keys {
			consumed[k] = true
		}
	}

	for _, k := range rec.Keys() {
		if consumed[k] {
			continue
		}
		b := obj.base()
		if b.Extra == nil {
			b.Extra = plist.NewDict()
		}
		v, _ := rec.Get(k)
		b.Extra.Set(k, v)
	}

	if err := d.store.AddAs(id, obj); err != nil {
		return &DecodeError{ObjectID: rawID, Kind: isa, Err: err}
	}
	return nil
}

type fieldError struct {
	field string
	err   error
}

func (d *decoder) decodeFields(obj Object, rec *plist.Dict) (map[string]bool, *fieldError) {
	v := structValue(obj)
	consumed := map[string]bool{"isa": true}

	for _, f := range fieldsOf(v.Type()) {
		raw, ok := rec.Get(f.key)
		if !ok {
			if f.required {
				return nil, &fieldError{field: f.key, err: ErrMissingField}
			}
			continue
		}
		consumed[f.key] = true
		if err := d.decodeField(v.FieldByIndex(f.index), f, raw); err != nil {
			return nil, &fieldError{field: f.key, err: err}
		}
		if s, ok := raw.(plist.String); ok && s == "" && f.codec == codecString {
			obj.base().markEmpty(f.key)
		}
	}
	return consumed, nil
}

func (d *decoder) decodeField(fv reflect.Value, f fieldInfo, raw plist.Value) error {
	switch f.codec {
	case codecDict:
		dict, ok := raw.(*plist.Dict)
		if !ok {
			return fmt.Errorf("%w: expected dictionary", ErrInvalidField)
		}
		fv.Set(reflect.ValueOf(dict))
		return nil
	case codecSettings:
		dict, ok := raw.(*plist.Dict)
		if !ok {
			return fmt.Errorf("%w: expected dictionary", ErrInvalidField)
		}
		settings, err := decodeSettings(dict)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(settings))
		return nil
	case codecStrings, codecRefs:
		items, ok := plist.Strings(raw)
		if !ok {
			return fmt.Errorf("%w: expected array of strings", ErrInvalidField)
		}
		if f.codec == codecStrings {
			fv.Set(reflect.ValueOf(items))
			return nil
		}
		ids := make([]objectid.ID, len(items))
		for i, s := range items {
			id, err := objectid.Parse(s)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidField, err)
			}
			ids[i] = id
		}
		d.later(func() {
			cells := make([]*objectref.Cell, len(ids))
			for i, id := range ids {
				cells[i] = d.cellFor(id)
			}
			fv.Set(reflect.ValueOf(cells))
		})
		return nil
	}

	s, ok := raw.(plist.String)
	if !ok {
		return fmt.Errorf("%w: expected string", ErrInvalidField)
	}
	str := string(s)

	switch f.codec {
	case codecString:
		fv.SetString(str)
	case codecOptString:
		fv.Set(reflect.ValueOf(&str))
	case codecOptInt:
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidField, str)
		}
		fv.Set(reflect.ValueOf(&n))
	case codecOptBool:
		b, err := parseBool(str)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(&b))
	case codecRef:
		id, err := objectid.Parse(str)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidField, err)
		}
		d.later(func() { fv.Set(reflect.ValueOf(d.cellFor(id))) })
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1", "YES", "true":
		return true, nil
	case "0", "NO", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidField, s)
}

// linkParents derives the parent link of every file element from the
// children lists of the groups holding it.
func (d *Document) linkParents() {
	for _, obj := range d.Objects() {
		c, ok := obj.(Container)
		if !ok {
			continue
		}
		for _, child := range ChildrenOf(c) {
			resolved, err := Resolve(child)
			if err != nil {
				continue
			}
			if el, ok := ElementOf(resolved); ok {
				el.parent = c.Cell()
			}
		}
	}
}
