package pbxfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/pbxproj/internal/ctxlog"
	"github.com/vk/pbxproj/internal/fsutil"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/plist"
	"github.com/vk/pbxproj/internal/refgen"
)

// Options controls how documents are written.
type Options struct {
	// SettingsOrder orders build setting names. Nil means lexical.
	SettingsOrder pbx.SettingsOrder
	// Generator assigns permanent identifiers before Save writes.
	Generator refgen.Generator
}

// singleLine lists the kinds whose records are written on one line.
var singleLine = map[string]bool{
	pbx.KindBuildFile:     true,
	pbx.KindFileReference: true,
}

// Read parses a project file.
func Read(ctx context.Context, r io.Reader) (*pbx.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	root, err := plist.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pbx.ErrMalformedDocument, err)
	}
	doc, err := pbx.Decode(root)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Decoded project file.", "objects", doc.Store().Len(), "objectVersion", doc.ObjectVersion)
	return doc, nil
}

// ReadFile reads the project file at path. A project bundle directory is
// accepted in place of the file; the bundle name becomes the document name.
func ReadFile(ctx context.Context, path string) (*pbx.Document, error) {
	path = fsutil.ResolveProjectFile(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if name, ok := fsutil.ProjectName(path); ok {
		doc.Name = name
	}
	return doc, nil
}

// Write renders doc to w. Nothing is written to w when rendering fails.
func Write(ctx context.Context, w io.Writer, doc *pbx.Document, opts Options) error {
	var buf bytes.Buffer
	if err := render(&buf, doc, opts); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Wrote project file.", "bytes", buf.Len())
	return nil
}

// WriteFile renders doc and atomically replaces the file at path.
func WriteFile(ctx context.Context, path string, doc *pbx.Document, opts Options) error {
	path = fsutil.ResolveProjectFile(path)
	var buf bytes.Buffer
	if err := Write(ctx, &buf, doc, opts); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// Prepare assigns permanent identifiers ahead of a write. Temporary objects
// the project cannot reach are pruned with a warning unless the generator is
// set to fail on them, since they could not be written otherwise.
func Prepare(ctx context.Context, doc *pbx.Document, gen refgen.Generator) (refgen.Result, error) {
	if gen.OnUnreachable == refgen.Report {
		gen.OnUnreachable = refgen.Prune
	}
	res, err := gen.Generate(ctx, doc)
	if err != nil {
		return res, fmt.Errorf("generating identifiers: %w", err)
	}
	if res.Pruned {
		ctxlog.FromContext(ctx).Warn("Pruned unreachable objects.", "count", len(res.Unreachable), "project", doc.Name)
	}
	return res, nil
}

// Save prepares doc and writes it to path.
func Save(ctx context.Context, path string, doc *pbx.Document, opts Options) (refgen.Result, error) {
	res, err := Prepare(ctx, doc, opts.Generator)
	if err != nil {
		return res, err
	}
	return res, WriteFile(ctx, path, doc, opts)
}

func render(w io.Writer, doc *pbx.Document, opts Options) error {
	names := doc.Names()
	encOpts := pbx.EncodeOptions{Names: names, SettingsOrder: opts.SettingsOrder}

	rootID := doc.Root().ID()
	if rootID.IsTemporary() {
		return fmt.Errorf("%w: root object %s", pbx.ErrTemporaryID, rootID)
	}

	sections := make(map[string][]pbx.Object)
	for _, obj := range doc.Objects() {
		sections[obj.Kind()] = append(sections[obj.Kind()], obj)
	}
	kinds := make([]string, 0, len(sections))
	for k := range sections {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	classes := doc.Classes
	if classes == nil {
		classes = plist.NewDict()
	}

	enc := plist.NewEncoder(w)
	enc.Raw(plist.Header + "\n{\n")
	enc.Entry(1, "archiveVersion", "", plist.String(doc.ArchiveVersion))
	enc.Entry(1, "classes", "", classes)
	enc.Entry(1, "objectVersion", "", plist.String(doc.ObjectVersion))
	enc.Raw("\tobjects = {\n")
	for _, kind := range kinds {
		enc.Raw("\n/* Begin " + kind + " section */\n")
		for _, obj := range sections[kind] {
			rec, err := pbx.EncodeObject(obj, encOpts)
			if err != nil {
				return err
			}
			rec.SetInline(singleLine[kind])
			enc.Entry(2, obj.ID().String(), names.Name(obj), rec)
		}
		enc.Raw("/* End " + kind + " section */\n")
	}
	enc.Raw("\t};\n")

	var rootComment string
	if project, err := doc.Project(); err == nil {
		rootComment = names.Name(project)
	}
	enc.Entry(1, "rootObject", "", plist.Ref{ID: rootID.String(), Comment: rootComment})
	enc.Raw("}\n")

	if err := enc.Err(); err != nil {
		if errors.Is(err, plist.ErrInvalidComment) {
			return fmt.Errorf("%w: %w", pbx.ErrEncoding, err)
		}
		return err
	}
	return nil
}
