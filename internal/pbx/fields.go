package pbx

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

type fieldCodec int

const (
	codecString fieldCodec = iota
	codecOptString
	codecOptInt
	codecOptBool
	codecStrings
	codecRef
	codecRefs
	codecDict
	codecSettings
)

// fieldInfo describes one tagged field of a record struct.
type fieldInfo struct {
	key       string
	index     []int
	codec     fieldCodec
	required  bool
	noComment bool
}

var (
	baseType     = reflect.TypeOf(Base{})
	cellType     = reflect.TypeOf((*objectref.Cell)(nil))
	cellsType    = reflect.TypeOf([]*objectref.Cell(nil))
	dictType     = reflect.TypeOf((*plist.Dict)(nil))
	settingsType = reflect.TypeOf(BuildSettings(nil))
	stringsType  = reflect.TypeOf([]string(nil))

	fieldCache sync.Map // reflect.Type -> []fieldInfo
)

// fieldsOf returns the tagged fields of a record struct type, sorted by key.
func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var fields []fieldInfo
	collectFields(t, nil, &fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })
	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}

func collectFields(t reflect.Type, prefix []int, out *[]fieldInfo) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if field.Type != baseType {
				collectFields(field.Type, index, out)
			}
			continue
		}
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("pbx")
		if tag == "" || tag == "-" {
			continue
		}

		parts := strings.Split(tag, ",")
		info := fieldInfo{key: parts[0], index: index}
		for _, opt := range parts[1:] {
			switch opt {
			case "required":
				info.required = true
			case "nocomment":
				info.noComment = true
			}
		}
		info.codec = codecFor(field, parts[1:])
		*out = append(*out, info)
	}
}

func codecFor(field reflect.StructField, opts []string) fieldCodec {
	switch field.Type {
	case cellType:
		return codecRef
	case cellsType:
		return codecRefs
	case dictType:
		return codecDict
	case settingsType:
		return codecSettings
	case stringsType:
		return codecStrings
	}
	switch field.Type.Kind() {
	case reflect.String:
		return codecString
	case reflect.Pointer:
		switch field.Type.Elem().Kind() {
		case reflect.String:
			return codecOptString
		case reflect.Int:
			return codecOptInt
		case reflect.Bool:
			return codecOptBool
		}
	}
	panic(fmt.Sprintf("pbx: field %s (%s) with tag options %v has no codec", field.Name, field.Type, opts))
}

// structValue returns the addressable struct behind an object pointer.
func structValue(obj Object) reflect.Value {
	return reflect.ValueOf(obj).Elem()
}
