package workspace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/Demo.xcworkspace"

func TestReadFile(t *testing.T) {
	ws, err := ReadFile(fixture)
	require.NoError(t, err)

	want := &Workspace{
		Version: "1.0",
		Items: []Item{
			{Kind: FileRef, Location: Location{Scheme: SchemeGroup, Path: "App/App.xcodeproj"}},
			{
				Kind:     Group,
				Location: Location{Scheme: SchemeContainer, Path: "Libraries"},
				Name:     "Libraries",
				Items: []Item{
					{Kind: FileRef, Location: Location{Scheme: SchemeGroup, Path: "Net/Net.xcodeproj"}},
					{Kind: FileRef, Location: Location{Scheme: SchemeGroup, Path: "README.md"}},
				},
			},
			{Kind: FileRef, Location: Location{Scheme: SchemeAbsolute, Path: "/opt/shared/Shared.xcodeproj"}},
		},
	}
	if diff := cmp.Diff(want, ws); diff != "" {
		t.Errorf("decoded workspace mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_RoundTripsFixture(t *testing.T) {
	want, err := os.ReadFile(filepath.Join(fixture, FileName))
	require.NoError(t, err)
	ws, err := ReadFile(fixture)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ws.Encode(&buf))
	if diff := cmp.Diff(string(want), buf.String()); diff != "" {
		t.Errorf("encoded workspace mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_EscapesAttributes(t *testing.T) {
	ws := New()
	ws.Items = []Item{{Kind: Group, Location: Location{Scheme: SchemeGroup, Path: "a&b"}, Name: `say "hi"`}}

	var buf bytes.Buffer
	require.NoError(t, ws.Encode(&buf))
	assert.Contains(t, buf.String(), "group:a&amp;b")

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ws.Items, back.Items)
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "not xml", input: "<Workspace", wantErr: ErrMalformedWorkspace},
		{name: "wrong root", input: `<Project version="1.0"></Project>`, wantErr: ErrMalformedWorkspace},
		{name: "unknown element", input: `<Workspace version="1.0"><Folder location="group:x"/></Workspace>`, wantErr: ErrMalformedWorkspace},
		{name: "no scheme", input: `<Workspace version="1.0"><FileRef location="x.xcodeproj"/></Workspace>`, wantErr: ErrMalformedWorkspace},
		{name: "unknown scheme", input: `<Workspace version="1.0"><FileRef location="ftp:x"/></Workspace>`, wantErr: ErrUnknownScheme},
		{name: "file ref with children", input: `<Workspace version="1.0"><FileRef location="group:x"><FileRef location="group:y"/></FileRef></Workspace>`, wantErr: ErrMalformedWorkspace},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestProjectPaths(t *testing.T) {
	ws, err := ReadFile(fixture)
	require.NoError(t, err)

	got, err := ws.ProjectPaths("/work")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/work", "App", "App.xcodeproj"),
		filepath.Join("/work", "Libraries", "Net", "Net.xcodeproj"),
		"/opt/shared/Shared.xcodeproj",
	}, got)
}

func TestResolver_Schemes(t *testing.T) {
	r := Resolver{BaseDir: "/ws", DeveloperDir: "/dev"}
	testCases := []struct {
		loc  Location
		want string
	}{
		{loc: Location{Scheme: SchemeAbsolute, Path: "/a/b"}, want: "/a/b"},
		{loc: Location{Scheme: SchemeSelf}, want: "/ws"},
		{loc: Location{Scheme: SchemeContainer, Path: "x"}, want: "/ws/x"},
		{loc: Location{Scheme: SchemeCurrent, Path: "x"}, want: "/ws/x"},
		{loc: Location{Scheme: SchemeGroup, Path: "y"}, want: "/group/y"},
		{loc: Location{Scheme: SchemeDeveloper, Path: "Tools"}, want: "/dev/Tools"},
	}
	for _, tc := range testCases {
		t.Run(tc.loc.String(), func(t *testing.T) {
			got, err := r.resolve(tc.loc, "/group")
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tc.want), got)
		})
	}

	got, err := Resolver{}.resolve(Location{Scheme: SchemeDeveloper, Path: "x"}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(DefaultDeveloperDir, "x"), got)
}

func TestAddFileRef(t *testing.T) {
	ws := New()
	loc := Location{Scheme: SchemeGroup, Path: "App.xcodeproj"}
	assert.True(t, ws.AddFileRef(loc))
	assert.False(t, ws.AddFileRef(loc))
	assert.Len(t, ws.Items, 1)
}
