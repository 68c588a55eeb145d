package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/pbxproj/internal/config"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/pbxfile"
	"github.com/vk/pbxproj/internal/testutil"
)

const fixtureBundle = "../pbxfile/testdata/App.xcodeproj"

// copyFixture returns the project file of a private copy of the fixture.
func copyFixture(t *testing.T) string {
	t.Helper()
	return filepath.Join(testutil.CopyTree(t, fixtureBundle), "project.pbxproj")
}

// untidy rewrites the fixture on a single line per object.
func untidy(t *testing.T, file string) {
	t.Helper()
	text := testutil.ReadString(t, file)
	text = strings.ReplaceAll(text, "\n\t\t\t", " ")
	require.NoError(t, os.WriteFile(file, []byte(text), 0o644))
}

func TestFormat_AlreadyCanonical(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	file := copyFixture(t)

	results, err := a.Format(context.Background(), file, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Changed)
	assert.Zero(t, results[0].Assigned)
}

func TestFormat_RewritesAndIsIdempotent(t *testing.T) {
	a, _, logs := SetupAppTest(t, nil)
	file := copyFixture(t)
	want := testutil.ReadString(t, file)
	untidy(t, file)

	results, err := a.Format(context.Background(), filepath.Dir(file), false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)
	assert.Equal(t, want, testutil.ReadString(t, file))
	testutil.AssertLogContains(t, logs, "Project formatted.")

	results, err = a.Format(context.Background(), file, false)
	require.NoError(t, err)
	assert.False(t, results[0].Changed)
}

func TestFormat_CheckLeavesFile(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	file := copyFixture(t)
	untidy(t, file)
	before := testutil.ReadString(t, file)

	results, err := a.Format(context.Background(), file, true)
	require.NoError(t, err)
	assert.True(t, results[0].Changed)
	assert.Equal(t, before, testutil.ReadString(t, file))
}

func TestFormat_SearchesDirectories(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	root := t.TempDir()
	for _, name := range []string{"One", "Two"} {
		dst := filepath.Join(root, name, name+".xcodeproj")
		require.NoError(t, os.MkdirAll(dst, 0o755))
		data, err := os.ReadFile(filepath.Join(fixtureBundle, "project.pbxproj"))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, "project.pbxproj"), data, 0o644))
	}

	results, err := a.Format(context.Background(), root, true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Path, "One.xcodeproj")
	assert.Contains(t, results[1].Path, "Two.xcodeproj")
}

func TestFormat_Errors(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)

	_, err := a.Format(context.Background(), filepath.Join(t.TempDir(), "missing.xcodeproj"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = a.Format(context.Background(), t.TempDir(), false)
	assert.ErrorContains(t, err, "no .xcodeproj bundles")

	dir := testutil.WriteFiles(t, map[string]string{"Bad.xcodeproj/project.pbxproj": "{ objects = ("})
	_, err = a.Format(context.Background(), filepath.Join(dir, "Bad.xcodeproj"), false)
	assert.ErrorIs(t, err, pbx.ErrMalformedDocument)
}

func TestIdentifiers(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	file := copyFixture(t)

	reports, err := a.Identifiers(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Clean())
	assert.Equal(t, 36, reports[0].Objects)

	// Detach Info.plist from the main group and point a build file at a
	// missing product.
	text := testutil.ReadString(t, file)
	text = strings.Replace(text, "\t\t\t\t8A5D00000000000000000022 /* Info.plist */,\n", "", 1)
	text = strings.Replace(text, "productRef = 8A5D000000000000000000A1 /* Alamofire */;", "productRef = 8A5D000000000000000000EE;", 1)
	require.NoError(t, os.WriteFile(file, []byte(text), 0o644))

	reports, err = a.Identifiers(context.Background(), file)
	require.NoError(t, err)
	r := reports[0]
	assert.False(t, r.Clean())
	assert.Empty(t, r.Temporary)
	assert.Equal(t, []ObjectEntry{{ID: "8A5D00000000000000000022", Kind: pbx.KindFileReference, Name: "Info.plist"}}, r.Unreachable)

	require.Len(t, r.Dangling, 1)
	assert.Equal(t, "8A5D00000000000000000061", r.Dangling[0].From.ID)
	assert.Equal(t, "productRef", r.Dangling[0].Field)
	assert.Equal(t, "8A5D000000000000000000EE", r.Dangling[0].ID)
}

func TestList(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	listing, err := a.List(context.Background(), copyFixture(t))
	require.NoError(t, err)
	require.Len(t, listing.Projects, 1)
	p := listing.Projects[0]

	assert.Equal(t, "App", p.Name)
	assert.Equal(t, "60", p.ObjectVersion)
	require.Len(t, p.Targets, 2)
	assert.Equal(t, TargetListing{
		Name:           "App",
		Kind:           pbx.KindNativeTarget,
		ProductType:    "com.apple.product-type.application",
		Phases:         []string{"Sources", "Frameworks", "Resources", "Run SwiftLint"},
		Configurations: []string{"Debug", "Release"},
	}, p.Targets[0])

	var paths []string
	for _, f := range p.Files {
		assert.Empty(t, f.Error)
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		"$(BUILT_PRODUCTS_DIR)/App.app",
		"$(BUILT_PRODUCTS_DIR)/AppTests.xctest",
		"Info.plist",
		"Sources/AppTests.swift",
		"Sources/Base.lproj/Localizable.strings",
		"Sources/fr.lproj/Localizable.strings",
		"Sources/main.swift",
	}, paths)
	assert.Equal(t, []string{"https://github.com/Alamofire/Alamofire.git"}, p.Packages)
	assert.Equal(t, []string{"App", "AppTests"}, p.BuildOrder)
	assert.Empty(t, p.OrderError)
}

func TestList_Renderings(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	listing, err := a.List(context.Background(), copyFixture(t))
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, listing.WriteText(&text))
	assert.Contains(t, text.String(), "  App [PBXNativeTarget] com.apple.product-type.application\n")
	assert.Contains(t, text.String(), "    phases: Sources, Frameworks, Resources, Run SwiftLint\n")
	assert.Contains(t, text.String(), "Sources/main.swift\n")

	var out bytes.Buffer
	require.NoError(t, listing.WriteYAML(&out))
	var back Listing
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &back))
	assert.Equal(t, *listing, back)
}

func TestList_Workspace(t *testing.T) {
	a, _, _ := SetupAppTest(t, nil)
	bundle := testutil.CopyTree(t, fixtureBundle)
	root := filepath.Dir(bundle)
	wsDir := filepath.Join(root, "All.xcworkspace")
	require.NoError(t, os.MkdirAll(wsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wsDir, "contents.xcworkspacedata"), []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Workspace version = "1.0">
   <FileRef location = "group:App.xcodeproj"></FileRef>
</Workspace>
`), 0o644))

	listing, err := a.List(context.Background(), wsDir)
	require.NoError(t, err)
	require.Len(t, listing.Projects, 1)
	assert.Equal(t, "App", listing.Projects[0].Name)
	assert.Equal(t, filepath.Join(bundle, "project.pbxproj"), listing.Projects[0].Path)
}

func TestAddTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults = pbx.BuildSettings{
		"SWIFT_VERSION": pbx.Scalar("6.0"),
		"OTHER_FLAGS":   pbx.List("-a"),
	}
	a, _, logs := SetupAppTest(t, cfg)
	file := copyFixture(t)

	res, err := a.AddTarget(context.Background(), file, AddTargetRequest{
		Name:        "Widget",
		ProductType: "com.apple.product-type.framework",
		DependsOn:   []string{"App"},
	})
	require.NoError(t, err)
	assert.Len(t, res.ID, 24)
	assert.Positive(t, res.Assigned)
	testutil.AssertLogContains(t, logs, "Target added.", "target=Widget")

	doc, err := pbxfile.ReadFile(context.Background(), file)
	require.NoError(t, err)
	targets, err := doc.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 3)
	widget, ok := targets[2].(*pbx.NativeTarget)
	require.True(t, ok)
	assert.Equal(t, "Widget", pbx.TargetName(widget))
	assert.Len(t, widget.BuildPhases, 3)
	assert.Len(t, widget.Dependencies, 1)

	list, err := objectref.As[*pbx.ConfigurationList](widget.BuildConfigurationList)
	require.NoError(t, err)
	for _, c := range list.BuildConfigurations {
		bc, err := objectref.As[*pbx.BuildConfiguration](c)
		require.NoError(t, err)
		assert.Equal(t, pbx.Scalar("6.0"), bc.BuildSettings["SWIFT_VERSION"])
		assert.Equal(t, pbx.List("-a"), bc.BuildSettings["OTHER_FLAGS"])
		assert.Equal(t, pbx.Scalar("$(TARGET_NAME)"), bc.BuildSettings["PRODUCT_NAME"])
	}

	// The saved file is canonical.
	results, err := a.Format(context.Background(), file, true)
	require.NoError(t, err)
	assert.False(t, results[0].Changed)
}

func TestAddTarget_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		req     AddTargetRequest
		wantMsg string
	}{
		{name: "duplicate", req: AddTargetRequest{Name: "App", ProductType: "com.apple.product-type.application"}, wantMsg: "already exists"},
		{name: "product type", req: AddTargetRequest{Name: "X", ProductType: "com.example.unknown"}, wantMsg: "unsupported product type"},
		{name: "dependency", req: AddTargetRequest{Name: "X", ProductType: "com.apple.product-type.application", DependsOn: []string{"Nope"}}, wantMsg: "not found"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _ := SetupAppTest(t, nil)
			file := copyFixture(t)
			before := testutil.ReadString(t, file)

			_, err := a.AddTarget(context.Background(), file, tc.req)
			assert.ErrorContains(t, err, tc.wantMsg)
			assert.Equal(t, before, testutil.ReadString(t, file))
		})
	}
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{config.FileName: `log_level = "warn"`})
	loader := &config.Loader{Environ: func() []string { return nil }}

	cfg, err := LoadConfig(context.Background(), loader, Options{ConfigPath: filepath.Join(dir, config.FileName)})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = LoadConfig(context.Background(), loader, Options{
		ConfigPath: filepath.Join(dir, config.FileName),
		LogLevel:   "DEBUG",
		LogFormat:  "json",
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = LoadConfig(context.Background(), loader, Options{LogFormat: "xml", ConfigPath: filepath.Join(dir, "none.hcl")})
	assert.ErrorContains(t, err, "invalid log format")
}
