package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pbxproj/internal/dag"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/pbxfile"
)

func fixtureTargets(t *testing.T) (*pbx.Document, []pbx.Target) {
	t.Helper()
	doc, err := pbxfile.ReadFile(context.Background(), copyFixture(t))
	require.NoError(t, err)
	targets, err := doc.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 2)
	return doc, targets
}

func TestBuildOrder(t *testing.T) {
	doc, targets := fixtureTargets(t)

	order, err := buildOrder(targets)
	require.NoError(t, err)
	assert.Equal(t, []string{"App", "AppTests"}, order)

	widget, err := doc.NewAggregateTarget("Widget")
	require.NoError(t, err)
	_, err = doc.AddTargetDependency(targets[0], widget)
	require.NoError(t, err)

	order, err = buildOrder(append(targets, widget))
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget", "App", "AppTests"}, order)
}

func TestBuildOrder_Cycle(t *testing.T) {
	doc, targets := fixtureTargets(t)
	_, err := doc.AddTargetDependency(targets[0], targets[1])
	require.NoError(t, err)

	_, err = buildOrder(targets)
	assert.ErrorIs(t, err, dag.ErrCycle)

	pl, err := projectListing(doc)
	require.NoError(t, err)
	assert.Empty(t, pl.BuildOrder)
	assert.Contains(t, pl.OrderError, "dependency cycle")
}
