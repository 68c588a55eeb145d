package pbx

import (
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

// Equal compares the content of two objects, never their identifiers.
// References compare by the content of the objects they point at, so two
// graphs describing the same project are equal whatever ids they carry.
// Cycles terminate: a pair already under comparison is assumed equal.
// Dangling references compare by identifier.
func Equal(a, b Object) bool {
	c := &comparer{visited: make(map[[2]Object]bool)}
	return c.objects(a, b)
}

// DocumentsEqual compares header values and the graphs reachable from the
// two root objects.
func DocumentsEqual(a, b *Document) bool {
	if a.ArchiveVersion != b.ArchiveVersion || a.ObjectVersion != b.ObjectVersion {
		return false
	}
	if !dictEqual(a.Classes, b.Classes) {
		return false
	}
	c := &comparer{visited: make(map[[2]Object]bool)}
	return c.refs(a.root, b.root)
}

type comparer struct {
	visited map[[2]Object]bool
}

func (c *comparer) objects(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	key := [2]Object{a, b}
	if c.visited[key] {
		return true
	}
	c.visited[key] = true

	if !dictEqual(a.base().Extra, b.base().Extra) {
		return false
	}
	return c.structs(structValue(a), structValue(b))
}

func (c *comparer) structs(a, b reflect.Value) bool {
	t := a.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == baseType {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if !c.structs(a.Field(i), b.Field(i)) {
				return false
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if !c.values(a.Field(i), b.Field(i)) {
			return false
		}
	}
	return true
}

func (c *comparer) values(a, b reflect.Value) bool {
	switch a.Type() {
	case cellType:
		return c.refs(a.Interface().(*objectref.Cell), b.Interface().(*objectref.Cell))
	case dictType:
		return dictEqual(a.Interface().(*plist.Dict), b.Interface().(*plist.Dict))
	case settingsType:
		return a.Interface().(BuildSettings).Equal(b.Interface().(BuildSettings))
	}
	switch a.Kind() {
	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !c.values(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		return c.structs(a, b)
	}
	return cmp.Equal(a.Interface(), b.Interface())
}

func (c *comparer) refs(a, b *objectref.Cell) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ao, aerr := Resolve(a)
	bo, berr := Resolve(b)
	if aerr != nil || berr != nil {
		return aerr != nil && berr != nil && a.ID() == b.ID()
	}
	return c.objects(ao, bo)
}

func dictEqual(a, b *plist.Dict) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return valueEqual(a, b)
}

// valueEqual compares plist values; dictionaries ignore key order.
func valueEqual(a, b plist.Value) bool {
	switch av := a.(type) {
	case plist.String:
		bv, ok := b.(plist.String)
		return ok && av == bv
	case plist.Data:
		bv, ok := b.(plist.Data)
		return ok && av == bv
	case plist.Ref:
		switch bv := b.(type) {
		case plist.Ref:
			return av.ID == bv.ID
		case plist.String:
			return av.ID == string(bv)
		}
		return false
	case plist.Array:
		bv, ok := b.(plist.Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *plist.Dict:
		bv, ok := b.(*plist.Dict)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			x, _ := av.Get(k)
			y, ok := bv.Get(k)
			if !ok || !valueEqual(x, y) {
				return false
			}
		}
		return true
	}
	return false
}
