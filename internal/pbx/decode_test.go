package pbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

func TestDecode_Sample(t *testing.T) {
	doc := decodeString(t, sampleProject)

	assert.Equal(t, "1", doc.ArchiveVersion)
	assert.Equal(t, "56", doc.ObjectVersion)
	assert.Equal(t, 12, doc.Store().Len())

	project, err := doc.Project()
	require.NoError(t, err)
	require.NotNil(t, project.ProjectDirPath)
	assert.Equal(t, "", *project.ProjectDirPath)
	assert.Nil(t, project.ProjectRoot)

	_, hasTargetAttrs := project.Attributes.Get("TargetAttributes")
	assert.False(t, hasTargetAttrs, "TargetAttributes is lifted out of the raw attributes")
	require.Len(t, project.TargetAttributes, 1)

	targets, err := doc.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 1)
	app := targets[0].(*NativeTarget)
	assert.Equal(t, "App", app.Name)
	assert.Equal(t, "com.apple.product-type.tool", app.ProductType)
	assert.Nil(t, app.BuildRules, "absent list stays nil")
	assert.Same(t, app.Cell(), project.TargetAttributes[0].Target, "edges share the object's cell")

	cfg := mustGet[*BuildConfiguration](t, doc, "AA0000000000000000000090")
	assert.Equal(t, List("-ObjC"), cfg.BuildSettings["OTHER_LDFLAGS"])
	assert.Equal(t, Scalar("macosx"), cfg.BuildSettings["SDKROOT"])

	file := mustGet[*FileReference](t, doc, "AA0000000000000000000020")
	require.NotNil(t, file.FileEncoding)
	assert.Equal(t, 4, *file.FileEncoding)
	custom, ok := file.Extra.String("customFlag")
	assert.True(t, ok, "unknown fields are preserved")
	assert.Equal(t, "keep", custom)

	// Both configuration list references point at the same shared cell.
	assert.Same(t, project.BuildConfigurationList, app.BuildConfigurationList)
}

func TestDecode_ParentLinks(t *testing.T) {
	doc := decodeString(t, sampleProject)

	sources := mustGet[*Group](t, doc, "AA0000000000000000000011")
	file := mustGet[*FileReference](t, doc, "AA0000000000000000000020")
	main := mustGet[*Group](t, doc, "AA0000000000000000000010")

	assert.Same(t, sources.Cell(), file.Parent())
	assert.Same(t, main.Cell(), sources.Parent())
	assert.Nil(t, main.Parent())
}

func TestDecode_DanglingReferenceFailsLazily(t *testing.T) {
	doc := decodeString(t, sampleProject)
	app := mustGet[*NativeTarget](t, doc, "AA0000000000000000000040")

	require.Len(t, app.Dependencies, 1)
	_, err := Resolve(app.Dependencies[0])
	assert.ErrorIs(t, err, objectref.ErrObjectNotFound)
	assert.Equal(t, "AA00000000000000000000FF", app.Dependencies[0].ID().String())
}

func TestDecode_ForwardReferences(t *testing.T) {
	// The build file precedes the file it references and the group precedes
	// its children.
	doc := decodeString(t, sampleProject)
	bf := mustGet[*BuildFile](t, doc, "AA0000000000000000000060")

	obj, err := Resolve(bf.FileRef)
	require.NoError(t, err)
	assert.Equal(t, KindFileReference, obj.Kind())
}

func TestDecode_Errors(t *testing.T) {
	wrap := func(objects string) string {
		return `{ archiveVersion = 1; classes = {}; objectVersion = 56; objects = {` + objects + `}; rootObject = AA0000000000000000000001; }`
	}
	project := `AA0000000000000000000001 = { isa = PBXProject; buildConfigurationList = AA0000000000000000000002; mainGroup = AA0000000000000000000003; };`

	testCases := []struct {
		name    string
		input   string
		wantErr error
		field   string
	}{
		{
			name:    "unknown kind",
			input:   wrap(project + `BB = { isa = PBXMagicThing; };`),
			wantErr: ErrUnknownObjectKind,
		},
		{
			name:    "missing isa",
			input:   wrap(project + `BB = { name = x; };`),
			wantErr: ErrMissingField,
			field:   "isa",
		},
		{
			name:    "missing required field",
			input:   wrap(project + `BB = { isa = XCBuildConfiguration; buildSettings = {}; };`),
			wantErr: ErrMissingField,
			field:   "name",
		},
		{
			name:    "wrong field shape",
			input:   wrap(project + `BB = { isa = PBXGroup; children = child; sourceTree = "<group>"; };`),
			wantErr: ErrInvalidField,
			field:   "children",
		},
		{
			name:    "bad number",
			input:   wrap(project + `BB = { isa = PBXFileReference; fileEncoding = utf8; };`),
			wantErr: ErrInvalidField,
			field:   "fileEncoding",
		},
		{
			name:    "missing root object",
			input:   `{ archiveVersion = 1; classes = {}; objectVersion = 56; objects = {}; }`,
			wantErr: ErrMalformedDocument,
		},
		{
			name:    "objects not a dictionary",
			input:   `{ archiveVersion = 1; classes = {}; objectVersion = 56; objects = (); rootObject = A; }`,
			wantErr: ErrMalformedDocument,
		},
		{
			name:    "root is not a project",
			input:   `{ archiveVersion = 1; classes = {}; objectVersion = 56; objects = { A = { isa = PBXGroup; }; }; rootObject = A; }`,
			wantErr: ErrMalformedDocument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := plist.Parse([]byte(tc.input))
			require.NoError(t, err)

			_, err = Decode(root)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.field != "" {
				var decErr *DecodeError
				require.ErrorAs(t, err, &decErr)
				assert.Equal(t, tc.field, decErr.Field)
			}
		})
	}
}

func TestDecode_EveryKindIsConstructible(t *testing.T) {
	for _, kind := range Kinds() {
		obj, ok := NewObject(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, obj.Kind())
		assert.NotPanics(t, func() { fieldsOf(structValue(obj).Type()) }, kind)
	}
	assert.Len(t, Kinds(), 28)

	_, ok := NewObject("PBXNope")
	assert.False(t, ok)
}
