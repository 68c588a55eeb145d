package pbx

import (
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/vk/pbxproj/internal/plist"
)

// BuildSetting is a scalar or list value. A non-nil List marks a list value.
type BuildSetting struct {
	Value string
	List  []string
}

// Scalar builds a scalar setting.
func Scalar(v string) BuildSetting { return BuildSetting{Value: v} }

// List builds a list setting.
func List(items ...string) BuildSetting {
	if items == nil {
		items = []string{}
	}
	return BuildSetting{List: items}
}

// IsList reports whether the setting holds a list.
func (s BuildSetting) IsList() bool { return s.List != nil }

// BuildSettings is an unordered map of setting names to values.
type BuildSettings map[string]BuildSetting

// Equal compares two settings maps regardless of order.
func (s BuildSettings) Equal(other BuildSettings) bool {
	return cmp.Equal(map[string]BuildSetting(s), map[string]BuildSetting(other))
}

// Keys returns the setting names sorted lexically.
func (s BuildSettings) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge copies every entry of other into s, replacing existing values.
func (s BuildSettings) Merge(other BuildSettings) {
	for k, v := range other {
		s[k] = v
	}
}

// Clone returns a deep copy.
func (s BuildSettings) Clone() BuildSettings {
	if s == nil {
		return nil
	}
	out := make(BuildSettings, len(s))
	for k, v := range s {
		if v.List != nil {
			v.List = append([]string{}, v.List...)
		}
		out[k] = v
	}
	return out
}

// SettingsOrder decides the written order of build setting names.
type SettingsOrder func(a, b string) bool

// LexicalOrder sorts setting names by byte value.
func LexicalOrder(a, b string) bool { return a < b }

// LengthOrder sorts shorter names first, breaking ties lexically.
func LengthOrder(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func decodeSettings(d *plist.Dict) (BuildSettings, error) {
	out := make(BuildSettings, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		switch tv := v.(type) {
		case plist.String:
			out[k] = Scalar(string(tv))
		case plist.Array:
			items, ok := plist.Strings(tv)
			if !ok {
				return nil, fmt.Errorf("%w: setting %s holds a nested container", ErrInvalidField, k)
			}
			out[k] = List(items...)
		default:
			return nil, fmt.Errorf("%w: setting %s holds a dictionary", ErrInvalidField, k)
		}
	}
	return out, nil
}

func encodeSettings(s BuildSettings, order SettingsOrder) *plist.Dict {
	keys := s.Keys()
	if order != nil {
		sort.SliceStable(keys, func(i, j int) bool { return order(keys[i], keys[j]) })
	}
	out := plist.NewDict()
	for _, k := range keys {
		v := s[k]
		if v.IsList() {
			out.Set(k, plist.StringArray(v.List))
			continue
		}
		out.SetString(k, v.Value)
	}
	return out
}
