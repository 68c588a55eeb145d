package refgen

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/pbxproj/internal/ctxlog"
	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/pbx"
)

// ErrUnreachableObjects is returned under the Fail policy when temporary
// objects cannot be reached from the project.
var ErrUnreachableObjects = errors.New("unreachable objects with temporary identifiers")

// UnreachablePolicy decides what happens to temporary objects the walk does
// not reach.
type UnreachablePolicy int

const (
	// Report lists them in the result and leaves them temporary.
	Report UnreachablePolicy = iota
	// Fail aborts generation with ErrUnreachableObjects.
	Fail
	// Prune deletes them from the document.
	Prune
)

func (p UnreachablePolicy) String() string {
	switch p {
	case Report:
		return "report"
	case Fail:
		return "fail"
	case Prune:
		return "prune"
	default:
		return fmt.Sprintf("UnreachablePolicy(%d)", int(p))
	}
}

// ParseUnreachablePolicy maps a configuration value onto a policy.
func ParseUnreachablePolicy(s string) (UnreachablePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "report":
		return Report, nil
	case "fail":
		return Fail, nil
	case "prune":
		return Prune, nil
	}
	return Report, fmt.Errorf("unknown unreachable policy %q: must be 'report', 'fail' or 'prune'", s)
}

// Generator assigns permanent identifiers. The zero value renders hex
// identifiers and reports unreachable objects.
type Generator struct {
	Format        objectid.Format
	OnUnreachable UnreachablePolicy
}

// Assignment records one identifier change.
type Assignment struct {
	Kind string
	Path string
	From objectid.ID
	To   objectid.ID
}

// Result summarizes a generation pass.
type Result struct {
	Assigned []Assignment
	// Unreachable holds the temporary ids of objects the walk did not reach.
	Unreachable []objectid.ID
	// Pruned is set when unreachable objects were deleted.
	Pruned bool
}

// Generate fixes every reachable temporary identifier of doc. The caller
// must hold exclusive access to the document for the whole pass.
func (g Generator) Generate(ctx context.Context, doc *pbx.Document) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	w := &walker{
		ctx:     ctx,
		gen:     g,
		names:   doc.Names(),
		used:    make(map[objectid.ID]bool),
		visited: make(map[*objectref.Cell]bool),
	}
	for _, obj := range doc.Objects() {
		if id := obj.ID(); !id.IsTemporary() {
			w.used[id] = true
		}
	}

	project, err := doc.Project()
	if err != nil {
		return Result{}, fmt.Errorf("resolving project: %w", err)
	}
	if err := w.walkProject(project); err != nil {
		return Result{}, err
	}
	if err := w.sweep(); err != nil {
		return Result{}, err
	}

	var res Result
	res.Assigned = w.assigned
	for _, obj := range doc.TemporaryObjects() {
		res.Unreachable = append(res.Unreachable, obj.ID())
	}
	logger.Debug("Reference generation walked the graph.", "assigned", len(res.Assigned), "unreachable", len(res.Unreachable))

	if len(res.Unreachable) == 0 {
		return res, nil
	}
	switch g.OnUnreachable {
	case Fail:
		return res, fmt.Errorf("%w: %d objects", ErrUnreachableObjects, len(res.Unreachable))
	case Prune:
		for _, id := range res.Unreachable {
			obj, ok := doc.Get(id)
			if !ok {
				continue
			}
			if err := doc.Delete(obj); err != nil {
				return res, fmt.Errorf("pruning %s: %w", id, err)
			}
			logger.Debug("Pruned unreachable object.", "kind", obj.Kind(), "id", id)
		}
		res.Pruned = true
	}
	return res, nil
}

type walker struct {
	ctx      context.Context
	gen      Generator
	names    *pbx.Names
	used     map[objectid.ID]bool
	visited  map[*objectref.Cell]bool
	reached  []reached
	assigned []Assignment
}

type reached struct {
	obj  pbx.Object
	path []string
}

// visit resolves c once per pass, fixing its identifier when temporary. It
// returns nil for nil, dangling or already visited references.
func (w *walker) visit(c *objectref.Cell, parent []string) (pbx.Object, []string, error) {
	if c == nil || w.visited[c] {
		return nil, nil, nil
	}
	obj, err := pbx.Resolve(c)
	if err != nil {
		if errors.Is(err, objectref.ErrStoreReleased) {
			return nil, nil, err
		}
		return nil, nil, nil
	}
	w.visited[c] = true

	path := append(append([]string{}, parent...), obj.Kind()+":"+w.names.Name(obj))
	w.reached = append(w.reached, reached{obj: obj, path: path})
	if obj.ID().IsTemporary() {
		if err := w.assign(obj, path); err != nil {
			return nil, nil, err
		}
	}
	return obj, path, nil
}

func (w *walker) assign(obj pbx.Object, path []string) error {
	base := strings.Join(path, "/")
	for n := 0; ; n++ {
		input := base
		if n > 0 {
			input = fmt.Sprintf("%s#%d", base, n)
		}
		sum := sha256.Sum256([]byte(input))
		id, err := objectid.FromDigest(w.gen.Format, pbx.Acronym(obj.Kind()), sum[:])
		if err != nil {
			return err
		}
		if w.used[id] {
			continue
		}
		from := obj.ID()
		if err := obj.Cell().Fix(id); err != nil {
			return fmt.Errorf("fixing %s %s: %w", obj.Kind(), from, err)
		}
		w.used[id] = true
		w.assigned = append(w.assigned, Assignment{Kind: obj.Kind(), Path: input, From: from, To: id})
		return nil
	}
}

// visitAll visits each cell in order, running then on every object reached.
func (w *walker) visitAll(cells []*objectref.Cell, parent []string, then func(pbx.Object, []string) error) error {
	for _, c := range cells {
		obj, path, err := w.visit(c, parent)
		if err != nil {
			return err
		}
		if obj == nil || then == nil {
			continue
		}
		if err := then(obj, path); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkProject(p *pbx.Project) error {
	_, root, err := w.visit(p.Cell(), nil)
	if err != nil {
		return err
	}
	if root == nil {
		root = []string{p.Kind() + ":" + w.names.Name(p)}
	}

	for _, c := range p.Targets {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if err := w.visitAll([]*objectref.Cell{c}, root, w.walkTarget); err != nil {
			return err
		}
	}
	if err := w.visitAll([]*objectref.Cell{p.MainGroup, p.ProductRefGroup}, root, w.walkElement); err != nil {
		return err
	}
	for _, ref := range p.ProjectReferences {
		if err := w.visitAll([]*objectref.Cell{ref.ProductGroup, ref.ProjectRef}, root, w.walkElement); err != nil {
			return err
		}
	}
	if err := w.visitAll(p.PackageReferences, root, nil); err != nil {
		return err
	}
	return w.visitAll([]*objectref.Cell{p.BuildConfigurationList}, root, w.walkConfigurationList)
}

func (w *walker) walkTarget(obj pbx.Object, path []string) error {
	t, ok := obj.(pbx.Target)
	if !ok {
		return nil
	}
	var (
		configs, phases, deps, products []*objectref.Cell
		rules, syncGroups               []*objectref.Cell
	)
	switch tt := t.(type) {
	case *pbx.NativeTarget:
		configs, phases, deps, products = []*objectref.Cell{tt.BuildConfigurationList}, tt.BuildPhases, tt.Dependencies, tt.PackageProductDependencies
		rules, syncGroups = tt.BuildRules, tt.FileSystemSynchronizedGroups
	case *pbx.AggregateTarget:
		configs, phases, deps, products = []*objectref.Cell{tt.BuildConfigurationList}, tt.BuildPhases, tt.Dependencies, tt.PackageProductDependencies
	case *pbx.LegacyTarget:
		configs, phases, deps, products = []*objectref.Cell{tt.BuildConfigurationList}, tt.BuildPhases, tt.Dependencies, tt.PackageProductDependencies
	}

	if err := w.visitAll(configs, path, w.walkConfigurationList); err != nil {
		return err
	}
	if err := w.visitAll(phases, path, w.walkBuildPhase); err != nil {
		return err
	}
	if err := w.visitAll(rules, path, nil); err != nil {
		return err
	}
	if err := w.visitAll(deps, path, w.walkDependency); err != nil {
		return err
	}
	if err := w.visitAll(products, path, nil); err != nil {
		return err
	}
	return w.visitAll(syncGroups, path, w.walkElement)
}

func (w *walker) walkConfigurationList(obj pbx.Object, path []string) error {
	list, ok := obj.(*pbx.ConfigurationList)
	if !ok {
		return nil
	}
	return w.visitAll(list.BuildConfigurations, path, nil)
}

func (w *walker) walkBuildPhase(obj pbx.Object, path []string) error {
	phase, ok := obj.(pbx.BuildPhase)
	if !ok {
		return nil
	}
	return w.visitAll(pbx.FilesOf(phase), path, func(obj pbx.Object, path []string) error {
		bf, ok := obj.(*pbx.BuildFile)
		if !ok {
			return nil
		}
		return w.visitAll([]*objectref.Cell{bf.FileRef, bf.ProductRef}, path, w.walkElement)
	})
}

func (w *walker) walkDependency(obj pbx.Object, path []string) error {
	dep, ok := obj.(*pbx.TargetDependency)
	if !ok {
		return nil
	}
	return w.visitAll([]*objectref.Cell{dep.TargetProxy, dep.ProductRef}, path, nil)
}

// sweep follows every reference the structured walk left out, in key order
// and with the referrer's path as parent, until no new object is reached.
func (w *walker) sweep() error {
	for i := 0; i < len(w.reached); i++ {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		from := w.reached[i]
		for _, e := range pbx.References(from.obj) {
			if _, _, err := w.visit(e.Cell, from.path); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkElement descends the file tree: group before children, children in
// stored order.
func (w *walker) walkElement(obj pbx.Object, path []string) error {
	switch el := obj.(type) {
	case pbx.Container:
		return w.visitAll(pbx.ChildrenOf(el), path, w.walkElement)
	case *pbx.SyncRootGroup:
		return w.visitAll(el.Exceptions, path, nil)
	case *pbx.ReferenceProxy:
		return w.visitAll([]*objectref.Cell{el.RemoteRef}, path, nil)
	}
	return nil
}
