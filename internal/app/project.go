package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/pbxproj/internal/fsutil"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/pbxfile"
)

// projectFiles expands path into project files: a project file or bundle
// names itself, any other directory is searched for bundles.
func projectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() || strings.HasSuffix(strings.TrimRight(path, string(os.PathSeparator)), fsutil.BundleExtension) {
		return []string{fsutil.ResolveProjectFile(path)}, nil
	}
	files, err := fsutil.FindProjectFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s bundles under %s", fsutil.BundleExtension, path)
	}
	return files, nil
}

// loadProject reads one project file, logging what was loaded.
func (a *App) loadProject(ctx context.Context, path string) (*pbx.Document, error) {
	doc, err := pbxfile.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Project loaded.", "path", path, "name", doc.Name, "objects", doc.Store().Len())
	return doc, nil
}
