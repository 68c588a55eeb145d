package app

import (
	"github.com/vk/pbxproj/internal/dag"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/pbx"
)

// buildOrder returns target names ordered so that every target follows the
// targets it depends on. Dependencies on targets of other projects are
// ignored.
func buildOrder(targets []pbx.Target) ([]string, error) {
	g := dag.New()
	names := make(map[string]string, len(targets))
	for _, t := range targets {
		id := t.ID().String()
		g.AddNode(id)
		names[id] = pbx.TargetName(t)
	}

	for _, t := range targets {
		for _, c := range pbx.TargetDependencies(t) {
			dep, err := objectref.As[*pbx.TargetDependency](c)
			if err != nil || dep.Target == nil {
				continue
			}
			from := dep.Target.ID().String()
			if _, ok := names[from]; !ok {
				continue
			}
			if err := g.AddEdge(from, t.ID().String()); err != nil {
				return nil, err
			}
		}
	}

	ids, err := g.Order()
	if err != nil {
		return nil, err
	}
	order := make([]string, len(ids))
	for i, id := range ids {
		order[i] = names[id]
	}
	return order, nil
}
