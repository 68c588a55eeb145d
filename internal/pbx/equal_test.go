package pbx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_IgnoresIdentifiers(t *testing.T) {
	// Dangling references compare by id, so drop the one in the sample.
	text := strings.ReplaceAll(sampleProject, "AA00000000000000000000FF,", "")
	a := decodeString(t, text)
	b := decodeString(t, strings.ReplaceAll(text, "AA00000000", "BB11111111"))

	assert.True(t, DocumentsEqual(a, b))

	pa, err := a.Project()
	require.NoError(t, err)
	pb, err := b.Project()
	require.NoError(t, err)
	assert.NotEqual(t, pa.ID(), pb.ID())
	assert.True(t, Equal(pa, pb))
}

func TestEqual_DetectsContentChanges(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(t *testing.T, doc *Document)
	}{
		{
			name: "file path",
			mutate: func(t *testing.T, doc *Document) {
				mustGet[*FileReference](t, doc, "AA0000000000000000000020").Path = "other.c"
			},
		},
		{
			name: "build setting",
			mutate: func(t *testing.T, doc *Document) {
				mustGet[*BuildConfiguration](t, doc, "AA0000000000000000000090").BuildSettings["SDKROOT"] = Scalar("iphoneos")
			},
		},
		{
			name: "children order",
			mutate: func(t *testing.T, doc *Document) {
				g := mustGet[*Group](t, doc, "AA0000000000000000000011")
				g.Children[0], g.Children[1] = g.Children[1], g.Children[0]
			},
		},
		{
			name: "optional flag present",
			mutate: func(t *testing.T, doc *Document) {
				mustGet[*FileReference](t, doc, "AA0000000000000000000020").IncludeInIndex = Bool(false)
			},
		},
		{
			name: "preserved unknown field",
			mutate: func(t *testing.T, doc *Document) {
				mustGet[*FileReference](t, doc, "AA0000000000000000000020").Extra.SetString("customFlag", "changed")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := decodeString(t, sampleProject)
			b := decodeString(t, sampleProject)
			tc.mutate(t, b)
			assert.False(t, DocumentsEqual(a, b))
		})
	}
}

func TestEqual_CyclesTerminate(t *testing.T) {
	build := func() *Document {
		doc, err := New("App")
		require.NoError(t, err)
		app, err := doc.NewNativeTarget("App", "com.apple.product-type.application")
		require.NoError(t, err)
		tests, err := doc.NewNativeTarget("AppTests", "com.apple.product-type.bundle.unit-test")
		require.NoError(t, err)
		_, err = doc.AddTargetDependency(tests, app)
		require.NoError(t, err)
		// The proxy points back at the project, closing a cycle.
		return doc
	}

	assert.True(t, DocumentsEqual(build(), build()))
}

func TestEqual_DanglingReferencesCompareByID(t *testing.T) {
	a := decodeString(t, sampleProject)
	b := decodeString(t, strings.ReplaceAll(sampleProject, "AA00000000000000000000FF", "AA00000000000000000000FE"))
	assert.False(t, DocumentsEqual(a, b))
}

func TestBuildSettings_EqualIgnoresOrder(t *testing.T) {
	a := BuildSettings{"A": Scalar("1"), "B": List("x", "y")}
	b := BuildSettings{"B": List("x", "y"), "A": Scalar("1")}
	assert.True(t, a.Equal(b))

	b["B"] = List("y", "x")
	assert.False(t, a.Equal(b))
	assert.False(t, BuildSettings{"A": Scalar("")}.Equal(BuildSettings{"A": List()}))
}
