package pbx

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

// encodeHook is implemented by kinds with fields the tag codec cannot
// express.
type encodeHook interface {
	encodeExtra(rec map[string]plist.Value, e *encoder) error
}

// EncodeOptions controls how records are produced.
type EncodeOptions struct {
	// Names supplies reference comments. Without it no comments are written.
	Names *Names
	// SettingsOrder orders build setting names. Nil means lexical.
	SettingsOrder SettingsOrder
}

type encoder struct {
	names *Names
	order SettingsOrder
}

// EncodeObject turns an object into its record: isa first, then every other
// key sorted. Objects and references must carry permanent identifiers.
func EncodeObject(obj Object, opts EncodeOptions) (*plist.Dict, error) {
	if obj.ID().IsTemporary() {
		return nil, fmt.Errorf("%w: %s %s", ErrTemporaryID, obj.Kind(), obj.ID())
	}
	e := &encoder{names: opts.Names, order: opts.SettingsOrder}
	if e.order == nil {
		e.order = LexicalOrder
	}

	fields := make(map[string]plist.Value)
	if extra := obj.base().Extra; extra != nil {
		for _, k := range extra.Keys() {
			v, _ := extra.Get(k)
			fields[k] = v
		}
	}

	v := structValue(obj)
	for _, f := range fieldsOf(v.Type()) {
		val, err := e.encodeField(v.FieldByIndex(f.index), f)
		if err != nil {
			return nil, fmt.Errorf("%s %s field %q: %w", obj.Kind(), obj.ID(), f.key, err)
		}
		if val == nil && f.codec == codecString && obj.base().emptyKeys[f.key] {
			val = plist.String("")
		}
		if val != nil {
			fields[f.key] = val
		}
	}
	if hook, ok := obj.(encodeHook); ok {
		if err := hook.encodeExtra(fields, e); err != nil {
			return nil, fmt.Errorf("%s %s: %w", obj.Kind(), obj.ID(), err)
		}
	}
	delete(fields, "isa")

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := plist.NewDict()
	rec.SetString("isa", obj.Kind())
	for _, k := range keys {
		rec.Set(k, fields[k])
	}
	return rec, nil
}

// encodeField returns nil for absent values.
func (e *encoder) encodeField(fv reflect.Value, f fieldInfo) (plist.Value, error) {
	switch f.codec {
	case codecString:
		if fv.String() == "" {
			return nil, nil
		}
		return plist.String(fv.String()), nil
	case codecOptString, codecOptInt, codecOptBool:
		if fv.IsNil() {
			return nil, nil
		}
		elem := fv.Elem()
		switch f.codec {
		case codecOptInt:
			return plist.String(strconv.FormatInt(elem.Int(), 10)), nil
		case codecOptBool:
			if elem.Bool() {
				return plist.String("1"), nil
			}
			return plist.String("0"), nil
		default:
			return plist.String(elem.String()), nil
		}
	case codecStrings:
		if fv.IsNil() {
			return nil, nil
		}
		return plist.StringArray(fv.Interface().([]string)), nil
	case codecDict:
		if fv.IsNil() {
			return nil, nil
		}
		return fv.Interface().(*plist.Dict), nil
	case codecSettings:
		if fv.IsNil() {
			return nil, nil
		}
		return encodeSettings(fv.Interface().(BuildSettings), e.order), nil
	case codecRef:
		if fv.IsNil() {
			return nil, nil
		}
		return e.ref(fv.Interface().(*objectref.Cell), f.noComment)
	case codecRefs:
		if fv.IsNil() {
			return nil, nil
		}
		cells := fv.Interface().([]*objectref.Cell)
		out := make(plist.Array, 0, len(cells))
		for _, c := range cells {
			v, err := e.ref(c, f.noComment)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported field codec %d", ErrEncoding, f.codec)
}

// ref renders a reference with the display name of its target. Dangling
// references keep their identifier and get no comment.
func (e *encoder) ref(c *objectref.Cell, noComment bool) (plist.Value, error) {
	id, err := e.permanentID(c)
	if err != nil {
		return nil, err
	}
	if noComment || e.names == nil {
		return plist.String(id.String()), nil
	}
	obj, err := Resolve(c)
	switch {
	case err == nil:
		return plist.Ref{ID: id.String(), Comment: e.names.Name(obj)}, nil
	case errors.Is(err, objectref.ErrObjectNotFound):
		return plist.String(id.String()), nil
	default:
		return nil, err
	}
}

func (e *encoder) permanentID(c *objectref.Cell) (objectid.ID, error) {
	if c == nil {
		return "", fmt.Errorf("%w: nil reference", ErrEncoding)
	}
	id := c.ID()
	if id.IsTemporary() {
		return "", fmt.Errorf("%w: reference to %s", ErrTemporaryID, id)
	}
	return id, nil
}
