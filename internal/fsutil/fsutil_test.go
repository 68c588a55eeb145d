package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindProjectFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b", "B.xcodeproj", ProjectFileName))
	touch(t, filepath.Join(root, "A.xcodeproj", ProjectFileName))
	// Nested bundles are not searched.
	touch(t, filepath.Join(root, "A.xcodeproj", "Inner.xcodeproj", ProjectFileName))
	// A bundle without a project file is skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Empty.xcodeproj"), 0o755))
	touch(t, filepath.Join(root, "notes.pbxproj"))

	files, err := FindProjectFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "A.xcodeproj", ProjectFileName),
		filepath.Join(root, "b", "B.xcodeproj", ProjectFileName),
	}, files)
}

func TestFindProjectFiles_MissingRoot(t *testing.T) {
	_, err := FindProjectFiles(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveProjectFile(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "App.xcodeproj", want: filepath.Join("App.xcodeproj", ProjectFileName)},
		{in: "App.xcodeproj/", want: filepath.Join("App.xcodeproj", ProjectFileName)},
		{in: "App.xcodeproj/project.pbxproj", want: "App.xcodeproj/project.pbxproj"},
		{in: "other.pbxproj", want: "other.pbxproj"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveProjectFile(tc.in))
		})
	}
}

func TestProjectName(t *testing.T) {
	name, ok := ProjectName(filepath.Join("x", "App.xcodeproj", ProjectFileName))
	assert.True(t, ok)
	assert.Equal(t, "App", name)

	_, ok = ProjectName(filepath.Join("x", ProjectFileName))
	assert.False(t, ok)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "out.txt"), []byte("x"), 0o644)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
