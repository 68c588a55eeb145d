package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/workspace"
)

// Listing is the content summary of one or more projects.
type Listing struct {
	Projects []ProjectListing `yaml:"projects"`
}

// ProjectListing summarizes one project.
type ProjectListing struct {
	Path          string          `yaml:"path"`
	Name          string          `yaml:"name"`
	ObjectVersion string          `yaml:"objectVersion"`
	Targets       []TargetListing `yaml:"targets"`
	BuildOrder    []string        `yaml:"buildOrder,omitempty"`
	OrderError    string          `yaml:"orderError,omitempty"`
	Files         []FileListing   `yaml:"files"`
	Packages      []string        `yaml:"packages,omitempty"`
}

// TargetListing summarizes one target.
type TargetListing struct {
	Name           string   `yaml:"name"`
	Kind           string   `yaml:"kind"`
	ProductType    string   `yaml:"productType,omitempty"`
	Phases         []string `yaml:"phases,omitempty"`
	Configurations []string `yaml:"configurations,omitempty"`
}

// FileListing is one file reference and its path relative to the project
// directory. Error is set when the path cannot be derived.
type FileListing struct {
	ID    string `yaml:"id"`
	Path  string `yaml:"path,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// listingBases resolve paths relative to the project directory and keep
// the other source trees symbolic.
var listingBases = pbx.PathBases{
	BuildProductsDir: "$(BUILT_PRODUCTS_DIR)",
	SDKRoot:          "$(SDKROOT)",
	DeveloperDir:     "$(DEVELOPER_DIR)",
}

// List summarizes the projects under path. A workspace bundle or contents
// file lists the projects it references.
func (a *App) List(ctx context.Context, path string) (*Listing, error) {
	ctx = a.context(ctx)
	files, err := a.listTargets(path)
	if err != nil {
		return nil, err
	}

	listing := &Listing{}
	for _, file := range files {
		doc, err := a.loadProject(ctx, file)
		if err != nil {
			return nil, err
		}
		pl, err := projectListing(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		pl.Path = file
		listing.Projects = append(listing.Projects, pl)
	}
	return listing, nil
}

func (a *App) listTargets(path string) ([]string, error) {
	trimmed := strings.TrimRight(path, string(os.PathSeparator))
	if !strings.HasSuffix(trimmed, ".xcworkspace") && filepath.Base(trimmed) != workspace.FileName {
		return projectFiles(path)
	}

	ws, err := workspace.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bundle := trimmed
	if filepath.Base(trimmed) == workspace.FileName {
		bundle = filepath.Dir(trimmed)
	}
	projects, err := ws.ProjectPaths(filepath.Dir(bundle))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Workspace resolved.", "path", path, "projects", len(projects))

	var files []string
	for _, p := range projects {
		more, err := projectFiles(p)
		if err != nil {
			return nil, fmt.Errorf("workspace %s: %w", path, err)
		}
		files = append(files, more...)
	}
	return files, nil
}

func projectListing(doc *pbx.Document) (ProjectListing, error) {
	names := doc.Names()
	pl := ProjectListing{Name: doc.Name, ObjectVersion: doc.ObjectVersion}

	targets, err := doc.Targets()
	if err != nil {
		return pl, err
	}
	for _, t := range targets {
		tl := TargetListing{Name: pbx.TargetName(t), Kind: t.Kind()}
		if nt, ok := t.(*pbx.NativeTarget); ok {
			tl.ProductType = nt.ProductType
		}
		phases, configList := targetEdges(t)
		for _, c := range phases {
			if phase, err := pbx.Resolve(c); err == nil {
				tl.Phases = append(tl.Phases, names.Name(phase))
			}
		}
		if list, err := objectref.As[*pbx.ConfigurationList](configList); err == nil {
			for _, c := range list.BuildConfigurations {
				if cfg, err := objectref.As[*pbx.BuildConfiguration](c); err == nil {
					tl.Configurations = append(tl.Configurations, cfg.Name)
				}
			}
		}
		pl.Targets = append(pl.Targets, tl)
	}
	if order, err := buildOrder(targets); err != nil {
		pl.OrderError = err.Error()
	} else {
		pl.BuildOrder = order
	}

	for _, obj := range doc.ObjectsOfKind(pbx.KindFileReference) {
		ref := obj.(*pbx.FileReference)
		fl := FileListing{ID: ref.ID().String()}
		if p, err := doc.FullPath(ref, listingBases); err != nil {
			fl.Error = err.Error()
		} else {
			fl.Path = p
		}
		pl.Files = append(pl.Files, fl)
	}
	sort.SliceStable(pl.Files, func(i, j int) bool { return pl.Files[i].Path < pl.Files[j].Path })

	for _, obj := range doc.ObjectsOfKind(pbx.KindRemotePackageReference) {
		pl.Packages = append(pl.Packages, obj.(*pbx.RemotePackageReference).RepositoryURL)
	}
	for _, obj := range doc.ObjectsOfKind(pbx.KindLocalPackageReference) {
		pl.Packages = append(pl.Packages, obj.(*pbx.LocalPackageReference).RelativePath)
	}
	return pl, nil
}

func targetEdges(t pbx.Target) (phases []*objectref.Cell, configList *objectref.Cell) {
	switch tt := t.(type) {
	case *pbx.NativeTarget:
		return tt.BuildPhases, tt.BuildConfigurationList
	case *pbx.AggregateTarget:
		return tt.BuildPhases, tt.BuildConfigurationList
	case *pbx.LegacyTarget:
		return tt.BuildPhases, tt.BuildConfigurationList
	}
	return nil, nil
}

// WriteText renders the listing for terminals.
func (l *Listing) WriteText(w io.Writer) error {
	var b strings.Builder
	for i, p := range l.Projects {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s, objectVersion %s)\n", p.Name, p.Path, p.ObjectVersion)
		b.WriteString("Targets:\n")
		for _, t := range p.Targets {
			fmt.Fprintf(&b, "  %s [%s]", t.Name, t.Kind)
			if t.ProductType != "" {
				fmt.Fprintf(&b, " %s", t.ProductType)
			}
			b.WriteString("\n")
			if len(t.Phases) > 0 {
				fmt.Fprintf(&b, "    phases: %s\n", strings.Join(t.Phases, ", "))
			}
			if len(t.Configurations) > 0 {
				fmt.Fprintf(&b, "    configurations: %s\n", strings.Join(t.Configurations, ", "))
			}
		}
		switch {
		case p.OrderError != "":
			fmt.Fprintf(&b, "Build order: ! %s\n", p.OrderError)
		case len(p.BuildOrder) > 0:
			fmt.Fprintf(&b, "Build order: %s\n", strings.Join(p.BuildOrder, ", "))
		}
		b.WriteString("Files:\n")
		for _, f := range p.Files {
			if f.Error != "" {
				fmt.Fprintf(&b, "  %s ! %s\n", f.ID, f.Error)
				continue
			}
			fmt.Fprintf(&b, "  %s %s\n", f.ID, f.Path)
		}
		if len(p.Packages) > 0 {
			b.WriteString("Packages:\n")
			for _, pkg := range p.Packages {
				fmt.Fprintf(&b, "  %s\n", pkg)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML renders the listing as a YAML document.
func (l *Listing) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return err
	}
	return enc.Close()
}
