package workspace

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedWorkspace is returned for contents files that do not have
	// the expected structure.
	ErrMalformedWorkspace = errors.New("malformed workspace")
	// ErrUnknownScheme is returned for locations with an unsupported scheme.
	ErrUnknownScheme = errors.New("unknown location scheme")
)

// Scheme says what a location path is relative to.
type Scheme string

const (
	// SchemeAbsolute paths are absolute.
	SchemeAbsolute Scheme = "absolute"
	// SchemeSelf paths are relative to the project embedding the workspace.
	SchemeSelf Scheme = "self"
	// SchemeContainer paths are relative to the directory holding the
	// workspace.
	SchemeContainer Scheme = "container"
	// SchemeGroup paths are relative to the enclosing group.
	SchemeGroup Scheme = "group"
	// SchemeDeveloper paths are relative to the developer directory.
	SchemeDeveloper Scheme = "developer"
	// SchemeCurrent is a legacy spelling resolved like SchemeContainer.
	SchemeCurrent Scheme = "current"
)

var schemes = map[Scheme]bool{
	SchemeAbsolute:  true,
	SchemeSelf:      true,
	SchemeContainer: true,
	SchemeGroup:     true,
	SchemeDeveloper: true,
	SchemeCurrent:   true,
}

// Location is a scheme-qualified path.
type Location struct {
	Scheme Scheme
	Path   string
}

// ParseLocation parses "<scheme>:<path>".
func ParseLocation(s string) (Location, error) {
	scheme, p, ok := strings.Cut(s, ":")
	if !ok {
		return Location{}, fmt.Errorf("%w: location %q has no scheme", ErrMalformedWorkspace, s)
	}
	if !schemes[Scheme(scheme)] {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return Location{Scheme: Scheme(scheme), Path: p}, nil
}

func (l Location) String() string {
	return string(l.Scheme) + ":" + l.Path
}

// ItemKind distinguishes the two element types of a contents file.
type ItemKind int

const (
	// FileRef references a project or file.
	FileRef ItemKind = iota
	// Group holds further items.
	Group
)

func (k ItemKind) String() string {
	if k == Group {
		return "Group"
	}
	return "FileRef"
}

// Item is a file reference or a group. Only groups have a name or children.
type Item struct {
	Kind     ItemKind
	Location Location
	Name     string
	Items    []Item
}

// Workspace is the decoded contents file.
type Workspace struct {
	Version string
	Items   []Item
}

// DefaultVersion is written for new workspaces.
const DefaultVersion = "1.0"

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{Version: DefaultVersion}
}

// AddFileRef appends a top-level reference unless an equal one exists. It
// reports whether the reference was added.
func (w *Workspace) AddFileRef(loc Location) bool {
	for _, it := range w.Items {
		if it.Kind == FileRef && it.Location == loc {
			return false
		}
	}
	w.Items = append(w.Items, Item{Kind: FileRef, Location: loc})
	return true
}
