package pbx

import (
	"fmt"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

const (
	targetAttributesKey = "TargetAttributes"
	testTargetIDKey     = "TestTargetID"
)

// decodeExtra lifts attributes.TargetAttributes and projectReferences, both
// keyed or valued by identifiers, into resolvable fields.
func (p *Project) decodeExtra(rec *plist.Dict, d *decoder) ([]string, error) {
	if p.Attributes != nil {
		if raw, ok := p.Attributes.Get(targetAttributesKey); ok {
			byTarget, ok := raw.(*plist.Dict)
			if !ok {
				return nil, fmt.Errorf("%w: attributes.%s is not a dictionary", ErrInvalidField, targetAttributesKey)
			}
			p.Attributes = p.Attributes.Clone()
			p.Attributes.Delete(targetAttributesKey)

			for _, rawID := range byTarget.Keys() {
				id, err := objectid.Parse(rawID)
				if err != nil {
					return nil, fmt.Errorf("%w: attributes.%s: %v", ErrInvalidField, targetAttributesKey, err)
				}
				v, _ := byTarget.Get(rawID)
				attrs, ok := v.(*plist.Dict)
				if !ok {
					return nil, fmt.Errorf("%w: attributes for target %s is not a dictionary", ErrInvalidField, rawID)
				}
				var testID objectid.ID
				if raw, ok := attrs.String(testTargetIDKey); ok {
					if testID, err = objectid.Parse(raw); err != nil {
						return nil, fmt.Errorf("%w: %s of target %s: %v", ErrInvalidField, testTargetIDKey, rawID, err)
					}
					attrs = attrs.Clone()
					attrs.Delete(testTargetIDKey)
				}
				i := len(p.TargetAttributes)
				p.TargetAttributes = append(p.TargetAttributes, TargetAttributes{Attributes: attrs})
				d.later(func() {
					p.TargetAttributes[i].Target = d.cellFor(id)
					if !testID.IsZero() {
						p.TargetAttributes[i].TestTarget = d.cellFor(testID)
					}
				})
			}
		}
	}

	raw, ok := rec.Get("projectReferences")
	if !ok {
		return nil, nil
	}
	refs, ok := raw.(plist.Array)
	if !ok {
		return nil, fmt.Errorf("%w: projectReferences is not an array", ErrInvalidField)
	}
	p.ProjectReferences = make([]ProjectReference, len(refs))
	for i, item := range refs {
		entry, ok := item.(*plist.Dict)
		if !ok {
			return nil, fmt.Errorf("%w: projectReferences[%d] is not a dictionary", ErrInvalidField, i)
		}
		var ids [2]objectid.ID
		for j, key := range []string{"ProductGroup", "ProjectRef"} {
			s, ok := entry.String(key)
			if !ok {
				return nil, fmt.Errorf("%w: projectReferences[%d].%s", ErrMissingField, i, key)
			}
			id, err := objectid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("%w: projectReferences[%d].%s: %v", ErrInvalidField, i, key, err)
			}
			ids[j] = id
		}
		d.later(func() {
			p.ProjectReferences[i] = ProjectReference{ProductGroup: d.cellFor(ids[0]), ProjectRef: d.cellFor(ids[1])}
		})
	}
	return []string{"projectReferences"}, nil
}

// encodeExtra writes the fields lifted by decodeExtra back into the record.
func (p *Project) encodeExtra(rec map[string]plist.Value, e *encoder) error {
	if len(p.TargetAttributes) > 0 {
		attrs := plist.NewDict()
		if p.Attributes != nil {
			attrs = p.Attributes.Clone()
		}
		byTarget := plist.NewDict()
		for _, ta := range p.TargetAttributes {
			id, err := e.permanentID(ta.Target)
			if err != nil {
				return fmt.Errorf("attributes.%s: %w", targetAttributesKey, err)
			}
			v, err := ta.encode(e)
			if err != nil {
				return fmt.Errorf("attributes.%s: %w", targetAttributesKey, err)
			}
			byTarget.Set(id.String(), v)
		}
		byTarget.SortKeys(func(a, b string) bool { return a < b })
		attrs.Set(targetAttributesKey, byTarget)
		attrs.SortKeys(func(a, b string) bool { return a < b })
		rec["attributes"] = attrs
	}

	if p.ProjectReferences == nil {
		return nil
	}
	refs := make(plist.Array, 0, len(p.ProjectReferences))
	for i, pr := range p.ProjectReferences {
		entry := plist.NewDict()
		for _, f := range []struct {
			key  string
			cell *objectref.Cell
		}{{"ProductGroup", pr.ProductGroup}, {"ProjectRef", pr.ProjectRef}} {
			v, err := e.ref(f.cell, false)
			if err != nil {
				return fmt.Errorf("projectReferences[%d].%s: %w", i, f.key, err)
			}
			entry.Set(f.key, v)
		}
		refs = append(refs, entry)
	}
	rec["projectReferences"] = refs
	return nil
}

// encode returns the attribute entries with TestTargetID placed before the
// first key that sorts after it. Other keys keep their order.
func (ta TargetAttributes) encode(e *encoder) (*plist.Dict, error) {
	if ta.TestTarget == nil {
		if ta.Attributes == nil {
			return plist.NewDict(), nil
		}
		return ta.Attributes.Clone(), nil
	}
	id, err := e.permanentID(ta.TestTarget)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", testTargetIDKey, err)
	}
	out := plist.NewDict()
	placed := false
	for _, k := range ta.Attributes.Keys() {
		if !placed && k > testTargetIDKey {
			out.SetString(testTargetIDKey, id.String())
			placed = true
		}
		v, _ := ta.Attributes.Get(k)
		out.Set(k, plist.CloneValue(v))
	}
	if !placed {
		out.SetString(testTargetIDKey, id.String())
	}
	return out, nil
}
