package pbx

import (
	"fmt"

	"github.com/vk/pbxproj/internal/inmemorystore"
	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/objectstore"
	"github.com/vk/pbxproj/internal/plist"
)

// Default document header values for new projects.
const (
	DefaultArchiveVersion = "1"
	DefaultObjectVersion  = "56"
)

// Document is a decoded project file: its header values and the object graph
// rooted at the project.
type Document struct {
	ArchiveVersion string
	ObjectVersion  string
	Classes        *plist.Dict
	// Name is the project name shown in display names, normally the file
	// name of the project bundle without extension.
	Name string

	store objectstore.Store
	root  *objectref.Cell
}

// New creates an empty project with a main group, a products group and a
// project configuration list holding Debug and Release. All new objects carry
// temporary identifiers.
func New(name string) (*Document, error) {
	d := &Document{
		ArchiveVersion: DefaultArchiveVersion,
		ObjectVersion:  DefaultObjectVersion,
		Classes:        plist.NewDict(),
		Name:           name,
		store:          inmemorystore.New(),
	}

	mainGroup := &Group{FileElement: FileElement{SourceTree: SourceTreeGroup}, group: group{Children: []*objectref.Cell{}}}
	if err := d.Insert(mainGroup); err != nil {
		return nil, err
	}
	products, err := d.NewGroup(mainGroup, "Products", "")
	if err != nil {
		return nil, err
	}
	configs, err := d.newDefaultConfigurationList(BuildSettings{}, BuildSettings{})
	if err != nil {
		return nil, err
	}

	attrs := plist.NewDict()
	attrs.SetString("BuildIndependentTargetsInParallel", "1")
	project := &Project{
		Attributes:             attrs,
		BuildConfigurationList: configs.Cell(),
		CompatibilityVersion:   "Xcode 14.0",
		DevelopmentRegion:      "en",
		HasScannedForEncodings: Int(0),
		KnownRegions:           []string{"en", "Base"},
		MainGroup:              mainGroup.Cell(),
		ProductRefGroup:        products.Cell(),
		ProjectDirPath:         String(""),
		ProjectRoot:            String(""),
		Targets:                []*objectref.Cell{},
	}
	if err := d.Insert(project); err != nil {
		return nil, err
	}
	d.root = project.Cell()
	return d, nil
}

// Store returns the store owning every object of the document.
func (d *Document) Store() objectstore.Store { return d.store }

// Root returns the cell of the root project object.
func (d *Document) Root() *objectref.Cell { return d.root }

// Project resolves the root project object.
func (d *Document) Project() (*Project, error) {
	return objectref.As[*Project](d.root)
}

// Objects returns every stored object, sorted by id.
func (d *Document) Objects() []Object {
	return toObjects(d.store.All())
}

// ObjectsOfKind returns every stored object of one kind, sorted by id.
func (d *Document) ObjectsOfKind(kind string) []Object {
	return toObjects(d.store.OfKind(kind))
}

// Get looks an object up by id.
func (d *Document) Get(id objectid.ID) (Object, bool) {
	obj, ok := d.store.Get(id)
	if !ok {
		return nil, false
	}
	o, ok := obj.(Object)
	return o, ok
}

// Insert adds an object to the document. An object without identity gets a
// fresh temporary identifier.
func (d *Document) Insert(obj Object) error {
	b := obj.base()
	if b.cell == nil {
		b.cell = objectref.NewTemporary(d.store)
	}
	if err := d.store.AddAs(b.cell.ID(), obj); err != nil {
		return fmt.Errorf("inserting %s: %w", obj.Kind(), err)
	}
	return nil
}

// Delete removes an object from the document. References to it are left in
// place and fail to resolve afterwards.
func (d *Document) Delete(obj Object) error {
	if _, ok := d.store.Delete(obj.ID()); !ok {
		return fmt.Errorf("deleting %s: %w", obj.ID(), objectref.ErrObjectNotFound)
	}
	return nil
}

// Release discards the document's store. Outstanding references fail with
// objectref.ErrStoreReleased.
func (d *Document) Release() { d.store.Release() }

// TemporaryObjects returns every object still holding a temporary id.
func (d *Document) TemporaryObjects() []Object {
	var out []Object
	for _, obj := range d.Objects() {
		if obj.ID().IsTemporary() {
			out = append(out, obj)
		}
	}
	return out
}

// Targets resolves the project's targets in stored order.
func (d *Document) Targets() ([]Target, error) {
	p, err := d.Project()
	if err != nil {
		return nil, err
	}
	out := make([]Target, 0, len(p.Targets))
	for _, c := range p.Targets {
		t, err := objectref.As[Target](c)
		if err != nil {
			return nil, fmt.Errorf("resolving target: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Resolve resolves a cell into a graph object.
func Resolve(c *objectref.Cell) (Object, error) {
	return objectref.As[Object](c)
}

func toObjects(in []objectstore.Object) []Object {
	out := make([]Object, 0, len(in))
	for _, o := range in {
		if obj, ok := o.(Object); ok {
			out = append(out, obj)
		}
	}
	return out
}
