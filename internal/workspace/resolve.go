package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/pbxproj/internal/fsutil"
)

// DefaultDeveloperDir is used for developer-relative locations.
const DefaultDeveloperDir = "/Applications/Xcode.app/Contents/Developer"

// Resolver turns locations into file system paths.
type Resolver struct {
	// BaseDir is the directory holding the workspace bundle. For a workspace
	// embedded in a project this is the project bundle itself.
	BaseDir string
	// DeveloperDir defaults to DefaultDeveloperDir.
	DeveloperDir string
}

// resolve returns the path of loc with groupDir as the enclosing group's
// directory.
func (r Resolver) resolve(loc Location, groupDir string) (string, error) {
	var base string
	switch loc.Scheme {
	case SchemeAbsolute:
		return filepath.Clean(loc.Path), nil
	case SchemeSelf, SchemeContainer, SchemeCurrent:
		base = r.BaseDir
	case SchemeGroup:
		base = groupDir
	case SchemeDeveloper:
		base = r.DeveloperDir
		if base == "" {
			base = DefaultDeveloperDir
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, loc.Scheme)
	}
	return filepath.Join(base, filepath.FromSlash(loc.Path)), nil
}

// FilePaths resolves every file reference, descending through groups, in
// document order.
func (r Resolver) FilePaths(w *Workspace) ([]string, error) {
	var out []string
	var walk func(items []Item, groupDir string) error
	walk = func(items []Item, groupDir string) error {
		for _, it := range items {
			p, err := r.resolve(it.Location, groupDir)
			if err != nil {
				return err
			}
			if it.Kind == Group {
				if err := walk(it.Items, p); err != nil {
					return err
				}
				continue
			}
			out = append(out, p)
		}
		return nil
	}
	if err := walk(w.Items, r.BaseDir); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectPaths resolves the project bundles the workspace references.
func (w *Workspace) ProjectPaths(baseDir string) ([]string, error) {
	all, err := Resolver{BaseDir: baseDir}.FilePaths(w)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range all {
		if strings.HasSuffix(p, fsutil.BundleExtension) {
			out = append(out, p)
		}
	}
	return out, nil
}
