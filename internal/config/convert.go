package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/pbxproj/internal/pbx"
)

// buildSettingsFromCty converts an object of setting values. Strings,
// numbers and bools become scalars; lists and tuples of those become lists.
// Null entries are skipped.
func buildSettingsFromCty(v cty.Value) (pbx.BuildSettings, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("build settings must be known values")
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("build settings must be an object, got %s", ty.FriendlyName())
	}

	out := make(pbx.BuildSettings)
	it := v.ElementIterator()
	for it.Next() {
		key, val := it.Element()
		name := key.AsString()
		if val.IsNull() {
			continue
		}
		vt := val.Type()
		if vt.IsListType() || vt.IsTupleType() || vt.IsSetType() {
			items := make([]string, 0, val.LengthInt())
			elems := val.ElementIterator()
			for elems.Next() {
				_, ev := elems.Element()
				s, err := scalarString(ev)
				if err != nil {
					return nil, fmt.Errorf("in setting '%s': %w", name, err)
				}
				items = append(items, s)
			}
			out[name] = pbx.List(items...)
			continue
		}
		s, err := scalarString(val)
		if err != nil {
			return nil, fmt.Errorf("in setting '%s': %w", name, err)
		}
		out[name] = pbx.Scalar(s)
	}
	return out, nil
}

// scalarString renders a primitive the way build settings spell it: bools
// become YES or NO.
func scalarString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("null list element")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return "", fmt.Errorf("could not convert cty.Bool: %w", err)
		}
		if b {
			return "YES", nil
		}
		return "NO", nil
	}
	return "", fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
}
