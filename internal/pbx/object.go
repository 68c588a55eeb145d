package pbx

import (
	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/objectstore"
	"github.com/vk/pbxproj/internal/plist"
)

// Object is any record of the project graph.
type Object interface {
	objectstore.Object
	// Cell returns the identity cell shared by every reference to the object.
	Cell() *objectref.Cell
	base() *Base
}

// Base is the layer shared by every object.
type Base struct {
	cell *objectref.Cell

	// Comments is a free-form annotation bag. It is never written to disk.
	Comments map[string]string
	// Extra holds record fields this package does not model, written back
	// unchanged.
	Extra *plist.Dict

	// emptyKeys lists string fields read as present but empty, so they are
	// written back rather than dropped.
	emptyKeys map[string]bool
}

// ID returns the object's current identifier.
func (b *Base) ID() objectid.ID { return b.cell.ID() }

// Cell returns the object's identity cell.
func (b *Base) Cell() *objectref.Cell { return b.cell }

func (b *Base) base() *Base { return b }

func (b *Base) markEmpty(key string) {
	if b.emptyKeys == nil {
		b.emptyKeys = make(map[string]bool)
	}
	b.emptyKeys[key] = true
}

// FileElement is the layer shared by nodes of the file tree.
type FileElement struct {
	SourceTree     string `pbx:"sourceTree"`
	Path           string `pbx:"path"`
	Name           string `pbx:"name"`
	IncludeInIndex *bool  `pbx:"includeInIndex"`
	UsesTabs       *bool  `pbx:"usesTabs"`
	IndentWidth    *int   `pbx:"indentWidth"`
	TabWidth       *int   `pbx:"tabWidth"`
	WrapsLines     *bool  `pbx:"wrapsLines"`

	parent *objectref.Cell
}

// Parent returns the group containing the element, or nil for a root.
func (e *FileElement) Parent() *objectref.Cell { return e.parent }

func (e *FileElement) fileElement() *FileElement { return e }

// Element is an object that is a node of the file tree.
type Element interface {
	Object
	fileElement() *FileElement
}

// ElementOf returns the file element layer of obj, if it has one.
func ElementOf(obj Object) (*FileElement, bool) {
	el, ok := obj.(Element)
	if !ok {
		return nil, false
	}
	return el.fileElement(), true
}

// Source tree values.
const (
	SourceTreeGroup            = "<group>"
	SourceTreeAbsolute         = "<absolute>"
	SourceTreeSourceRoot       = "SOURCE_ROOT"
	SourceTreeBuiltProductsDir = "BUILT_PRODUCTS_DIR"
	SourceTreeSDKRoot          = "SDKROOT"
	SourceTreeDeveloperDir     = "DEVELOPER_DIR"
)

// Bool returns a pointer to v, for optional flag fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional numeric fields.
func Int(v int) *int { return &v }

// String returns a pointer to v, for optional fields that must be written
// even when empty.
func String(v string) *string { return &v }
