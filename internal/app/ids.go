package app

import (
	"context"

	"github.com/vk/pbxproj/internal/pbx"
)

// ObjectEntry names one object in a report.
type ObjectEntry struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
	Name string `yaml:"name,omitempty"`
}

// DanglingEntry names a reference to a missing object.
type DanglingEntry struct {
	From  ObjectEntry `yaml:"from"`
	Field string      `yaml:"field"`
	ID    string      `yaml:"id"`
}

// IdentifierReport lists the identity problems of a project.
type IdentifierReport struct {
	Path        string          `yaml:"path"`
	Objects     int             `yaml:"objects"`
	Temporary   []ObjectEntry   `yaml:"temporary,omitempty"`
	Unreachable []ObjectEntry   `yaml:"unreachable,omitempty"`
	Dangling    []DanglingEntry `yaml:"dangling,omitempty"`
}

// Clean reports whether the project has no identity problems.
func (r IdentifierReport) Clean() bool {
	return len(r.Temporary) == 0 && len(r.Unreachable) == 0 && len(r.Dangling) == 0
}

// Identifiers inspects the identifiers of every project under path.
func (a *App) Identifiers(ctx context.Context, path string) ([]IdentifierReport, error) {
	ctx = a.context(ctx)
	files, err := projectFiles(path)
	if err != nil {
		return nil, err
	}
	var reports []IdentifierReport
	for _, file := range files {
		doc, err := a.loadProject(ctx, file)
		if err != nil {
			return reports, err
		}
		report, err := identifierReport(doc)
		if err != nil {
			return reports, err
		}
		report.Path = file
		reports = append(reports, report)
	}
	return reports, nil
}

func identifierReport(doc *pbx.Document) (IdentifierReport, error) {
	names := doc.Names()
	entry := func(obj pbx.Object) ObjectEntry {
		return ObjectEntry{ID: obj.ID().String(), Kind: obj.Kind(), Name: names.Name(obj)}
	}

	report := IdentifierReport{Objects: doc.Store().Len()}
	for _, obj := range doc.TemporaryObjects() {
		report.Temporary = append(report.Temporary, entry(obj))
	}
	unreachable, err := doc.Unreachable()
	if err != nil {
		return report, err
	}
	for _, obj := range unreachable {
		report.Unreachable = append(report.Unreachable, entry(obj))
	}
	dangling, err := doc.DanglingReferences()
	if err != nil {
		return report, err
	}
	for _, d := range dangling {
		report.Dangling = append(report.Dangling, DanglingEntry{From: entry(d.From), Field: d.Field, ID: d.ID.String()})
	}
	return report, nil
}
