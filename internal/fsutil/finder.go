// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectFileName is the name of the object graph file inside a project
// bundle.
const ProjectFileName = "project.pbxproj"

// BundleExtension is the directory extension of a project bundle.
const BundleExtension = ".xcodeproj"

// FindProjectFiles recursively searches rootPath for project bundles and
// returns the paths of their project files, sorted. Bundles are not descended
// into further.
func FindProjectFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || !strings.HasSuffix(d.Name(), BundleExtension) {
			return nil
		}
		candidate := filepath.Join(path, ProjectFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			files = append(files, candidate)
		}
		return fs.SkipDir
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ResolveProjectFile accepts either a project file or a bundle directory and
// returns the project file path.
func ResolveProjectFile(path string) string {
	if strings.HasSuffix(strings.TrimRight(path, string(filepath.Separator)), BundleExtension) {
		return filepath.Join(path, ProjectFileName)
	}
	return path
}

// ProjectName derives the project name from a project file path: the bundle
// directory name without its extension. ok is false when the file does not
// sit inside a bundle.
func ProjectName(projectFile string) (name string, ok bool) {
	dir := filepath.Base(filepath.Dir(projectFile))
	if !strings.HasSuffix(dir, BundleExtension) || dir == BundleExtension {
		return "", false
	}
	return strings.TrimSuffix(dir, BundleExtension), true
}
