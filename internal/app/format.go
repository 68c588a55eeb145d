package app

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/vk/pbxproj/internal/fsutil"
	"github.com/vk/pbxproj/internal/pbxfile"
)

// FormatResult describes the outcome for one project file.
type FormatResult struct {
	Path     string
	Assigned int
	Pruned   int
	// Changed is set when the canonical output differs from the file.
	Changed bool
}

// Format rewrites project files in canonical form, assigning permanent
// identifiers to any temporary objects. With check set nothing is written.
func (a *App) Format(ctx context.Context, path string, check bool) ([]FormatResult, error) {
	ctx = a.context(ctx)
	files, err := projectFiles(path)
	if err != nil {
		return nil, err
	}

	opts := a.cfg.WriteOptions()
	results := make([]FormatResult, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := a.formatFile(ctx, file, opts, check)
		if err != nil {
			return results, fmt.Errorf("%s: %w", file, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (a *App) formatFile(ctx context.Context, file string, opts pbxfile.Options, check bool) (FormatResult, error) {
	original, err := os.ReadFile(file)
	if err != nil {
		return FormatResult{}, err
	}
	doc, err := pbxfile.Read(ctx, bytes.NewReader(original))
	if err != nil {
		return FormatResult{}, err
	}
	if name, ok := fsutil.ProjectName(file); ok {
		doc.Name = name
	}

	gen, err := pbxfile.Prepare(ctx, doc, opts.Generator)
	if err != nil {
		return FormatResult{}, err
	}
	var buf bytes.Buffer
	if err := pbxfile.Write(ctx, &buf, doc, opts); err != nil {
		return FormatResult{}, err
	}

	res := FormatResult{
		Path:     file,
		Assigned: len(gen.Assigned),
		Changed:  !bytes.Equal(original, buf.Bytes()),
	}
	if gen.Pruned {
		res.Pruned = len(gen.Unreachable)
	}
	switch {
	case !res.Changed:
		a.logger.Debug("Project already formatted.", "path", file)
	case check:
		a.logger.Info("Project needs formatting.", "path", file)
	default:
		if err := fsutil.WriteFileAtomic(file, buf.Bytes(), 0o644); err != nil {
			return res, err
		}
		a.logger.Info("Project formatted.", "path", file, "assigned", res.Assigned)
	}
	return res, nil
}
