package pbx

import (
	"fmt"
	"path"
	"strings"

	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

// defaultBuildActionMask is the action mask the IDE writes for new phases.
const defaultBuildActionMask = 2147483647

// Copy files destinations, the values of dstSubfolderSpec.
const (
	DstAbsolutePath     = 0
	DstWrapper          = 1
	DstExecutables      = 6
	DstResources        = 7
	DstFrameworks       = 10
	DstSharedFrameworks = 11
	DstSharedSupport    = 12
	DstPlugins          = 13
	DstProductsDir      = 16
)

var fileTypesByExtension = map[string]string{
	".a":            "archive.ar",
	".c":            "sourcecode.c.c",
	".cpp":          "sourcecode.cpp.cpp",
	".dylib":        "compiled.mach-o.dylib",
	".entitlements": "text.plist.entitlements",
	".framework":    "wrapper.framework",
	".h":            "sourcecode.c.h",
	".json":         "text.json",
	".m":            "sourcecode.c.objc",
	".md":           "net.daringfireball.markdown",
	".metal":        "sourcecode.metal",
	".mm":           "sourcecode.cpp.objcpp",
	".plist":        "text.plist.xml",
	".png":          "image.png",
	".storyboard":   "file.storyboard",
	".strings":      "text.plist.strings",
	".swift":        "sourcecode.swift",
	".xcassets":     "folder.assetcatalog",
	".xcconfig":     "text.xcconfig",
	".xcdatamodeld": "wrapper.xcdatamodeld",
	".xcframework":  "wrapper.xcframework",
	".xib":          "file.xib",
}

// FileTypeForPath guesses the lastKnownFileType of a file from its
// extension. It returns "" for unknown extensions.
func FileTypeForPath(p string) string {
	return fileTypesByExtension[strings.ToLower(path.Ext(p))]
}

type productKind struct {
	fileType string
	pattern  string
}

var productKinds = map[string]productKind{
	"com.apple.product-type.application":       {"wrapper.application", "%s.app"},
	"com.apple.product-type.app-extension":     {"wrapper.app-extension", "%s.appex"},
	"com.apple.product-type.bundle":            {"wrapper.cfbundle", "%s.bundle"},
	"com.apple.product-type.bundle.unit-test":  {"wrapper.cfbundle", "%s.xctest"},
	"com.apple.product-type.bundle.ui-testing": {"wrapper.cfbundle", "%s.xctest"},
	"com.apple.product-type.framework":         {"wrapper.framework", "%s.framework"},
	"com.apple.product-type.library.dynamic":   {"compiled.mach-o.dylib", "lib%s.dylib"},
	"com.apple.product-type.library.static":    {"archive.ar", "lib%s.a"},
	"com.apple.product-type.tool":              {"compiled.mach-o.executable", "%s"},
}

// ProductTypes returns the product types NewNativeTarget accepts.
func ProductTypes() []string {
	out := make([]string, 0, len(productKinds))
	for k := range productKinds {
		out = append(out, k)
	}
	return out
}

// AddChild appends child to parent, moving it out of its previous group.
func AddChild(parent Container, child Element) {
	el := child.fileElement()
	if el.parent != nil {
		if old, err := objectref.As[Container](el.parent); err == nil {
			RemoveChild(old, child)
		}
	}
	g := parent.groupLayer()
	g.Children = append(g.Children, child.Cell())
	el.parent = parent.Cell()
}

// RemoveChild unlinks child from parent. It reports whether the child was
// found.
func RemoveChild(parent Container, child Element) bool {
	g := parent.groupLayer()
	for i, c := range g.Children {
		if c == child.Cell() {
			g.Children = append(g.Children[:i:i], g.Children[i+1:]...)
			if child.fileElement().parent == parent.Cell() {
				child.fileElement().parent = nil
			}
			return true
		}
	}
	return false
}

// NewGroup creates a group. A nil parent leaves it detached.
func (d *Document) NewGroup(parent Container, name, groupPath string) (*Group, error) {
	g := &Group{
		FileElement: FileElement{SourceTree: SourceTreeGroup, Name: name, Path: groupPath},
		group:       group{Children: []*objectref.Cell{}},
	}
	if err := d.Insert(g); err != nil {
		return nil, err
	}
	if parent != nil {
		AddChild(parent, g)
	}
	return g, nil
}

// NewVariantGroup creates a group of localized variants.
func (d *Document) NewVariantGroup(parent Container, name string) (*VariantGroup, error) {
	g := &VariantGroup{
		FileElement: FileElement{SourceTree: SourceTreeGroup, Name: name},
		group:       group{Children: []*objectref.Cell{}},
	}
	if err := d.Insert(g); err != nil {
		return nil, err
	}
	if parent != nil {
		AddChild(parent, g)
	}
	return g, nil
}

// NewFileReference creates a group-relative file reference with its file
// type guessed from the extension.
func (d *Document) NewFileReference(parent Container, filePath string) (*FileReference, error) {
	ref := &FileReference{
		FileElement:       FileElement{SourceTree: SourceTreeGroup, Path: filePath},
		LastKnownFileType: FileTypeForPath(filePath),
	}
	if base := path.Base(filePath); base != filePath {
		ref.Name = base
	}
	if err := d.Insert(ref); err != nil {
		return nil, err
	}
	if parent != nil {
		AddChild(parent, ref)
	}
	return ref, nil
}

// NewBuildConfiguration creates a configuration. Nil settings become empty.
func (d *Document) NewBuildConfiguration(name string, settings BuildSettings) (*BuildConfiguration, error) {
	if settings == nil {
		settings = BuildSettings{}
	}
	cfg := &BuildConfiguration{Name: name, BuildSettings: settings}
	if err := d.Insert(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfigurationList creates a list over configs.
func (d *Document) NewConfigurationList(defaultName string, configs ...*BuildConfiguration) (*ConfigurationList, error) {
	list := &ConfigurationList{
		BuildConfigurations:           make([]*objectref.Cell, 0, len(configs)),
		DefaultConfigurationIsVisible: Int(0),
		DefaultConfigurationName:      defaultName,
	}
	for _, c := range configs {
		list.BuildConfigurations = append(list.BuildConfigurations, c.Cell())
	}
	if err := d.Insert(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *Document) newDefaultConfigurationList(debug, release BuildSettings) (*ConfigurationList, error) {
	debugCfg, err := d.NewBuildConfiguration("Debug", debug)
	if err != nil {
		return nil, err
	}
	releaseCfg, err := d.NewBuildConfiguration("Release", release)
	if err != nil {
		return nil, err
	}
	return d.NewConfigurationList("Release", debugCfg, releaseCfg)
}

// NewNativeTarget creates a target with Debug and Release configurations
// and a product reference in the products group, and appends it to the
// project.
func (d *Document) NewNativeTarget(name, productType string) (*NativeTarget, error) {
	kind, ok := productKinds[productType]
	if !ok {
		return nil, fmt.Errorf("unsupported product type %q", productType)
	}
	p, err := d.Project()
	if err != nil {
		return nil, err
	}
	configs, err := d.newTargetConfigurations()
	if err != nil {
		return nil, err
	}

	product := &FileReference{
		FileElement: FileElement{
			SourceTree:     SourceTreeBuiltProductsDir,
			Path:           fmt.Sprintf(kind.pattern, name),
			IncludeInIndex: Bool(false),
		},
		ExplicitFileType: kind.fileType,
	}
	if err := d.Insert(product); err != nil {
		return nil, err
	}
	if p.ProductRefGroup != nil {
		if products, err := objectref.As[Container](p.ProductRefGroup); err == nil {
			AddChild(products, product)
		}
	}

	t := &NativeTarget{
		target:           newTargetLayer(name, configs),
		BuildRules:       []*objectref.Cell{},
		ProductReference: product.Cell(),
		ProductType:      productType,
	}
	if err := d.Insert(t); err != nil {
		return nil, err
	}
	p.Targets = append(p.Targets, t.Cell())
	return t, nil
}

// NewAggregateTarget creates an aggregate target and appends it to the
// project.
func (d *Document) NewAggregateTarget(name string) (*AggregateTarget, error) {
	p, err := d.Project()
	if err != nil {
		return nil, err
	}
	configs, err := d.newTargetConfigurations()
	if err != nil {
		return nil, err
	}
	t := &AggregateTarget{target: newTargetLayer(name, configs)}
	if err := d.Insert(t); err != nil {
		return nil, err
	}
	p.Targets = append(p.Targets, t.Cell())
	return t, nil
}

func (d *Document) newTargetConfigurations() (*ConfigurationList, error) {
	product := BuildSettings{"PRODUCT_NAME": Scalar("$(TARGET_NAME)")}
	return d.newDefaultConfigurationList(product, product.Clone())
}

func newTargetLayer(name string, configs *ConfigurationList) target {
	return target{
		BuildConfigurationList: configs.Cell(),
		BuildPhases:            []*objectref.Cell{},
		Dependencies:           []*objectref.Cell{},
		Name:                   name,
		ProductName:            name,
	}
}

// NewBuildPhase creates an empty phase of the given kind and appends it to
// the target.
func (d *Document) NewBuildPhase(t Target, kind string) (BuildPhase, error) {
	obj, ok := NewObject(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObjectKind, kind)
	}
	phase, ok := obj.(BuildPhase)
	if !ok {
		return nil, fmt.Errorf("%s is not a build phase", kind)
	}
	layer := phase.phaseLayer()
	layer.BuildActionMask = Int(defaultBuildActionMask)
	layer.Files = []*objectref.Cell{}
	layer.RunOnlyForDeploymentPostprocessing = Bool(false)

	switch p := phase.(type) {
	case *CopyFilesBuildPhase:
		p.DstPath = String("")
		p.DstSubfolderSpec = Int(DstAbsolutePath)
	case *ShellScriptBuildPhase:
		p.InputFileListPaths = []string{}
		p.InputPaths = []string{}
		p.OutputFileListPaths = []string{}
		p.OutputPaths = []string{}
		p.ShellPath = "/bin/sh"
		p.ShellScript = String("")
	}

	if err := d.Insert(phase); err != nil {
		return nil, err
	}
	tl := t.targetLayer()
	tl.BuildPhases = append(tl.BuildPhases, phase.Cell())
	return phase, nil
}

func newPhase[P BuildPhase](d *Document, t Target, kind string) (P, error) {
	var zero P
	phase, err := d.NewBuildPhase(t, kind)
	if err != nil {
		return zero, err
	}
	return phase.(P), nil
}

// NewSourcesBuildPhase appends a compile phase to t.
func (d *Document) NewSourcesBuildPhase(t Target) (*SourcesBuildPhase, error) {
	return newPhase[*SourcesBuildPhase](d, t, KindSourcesBuildPhase)
}

// NewFrameworksBuildPhase appends a link phase to t.
func (d *Document) NewFrameworksBuildPhase(t Target) (*FrameworksBuildPhase, error) {
	return newPhase[*FrameworksBuildPhase](d, t, KindFrameworksBuildPhase)
}

// NewResourcesBuildPhase appends a resource copy phase to t.
func (d *Document) NewResourcesBuildPhase(t Target) (*ResourcesBuildPhase, error) {
	return newPhase[*ResourcesBuildPhase](d, t, KindResourcesBuildPhase)
}

// NewHeadersBuildPhase appends a header copy phase to t.
func (d *Document) NewHeadersBuildPhase(t Target) (*HeadersBuildPhase, error) {
	return newPhase[*HeadersBuildPhase](d, t, KindHeadersBuildPhase)
}

// NewCopyFilesBuildPhase appends a copy phase with a destination to t.
func (d *Document) NewCopyFilesBuildPhase(t Target, name string, dstSubfolderSpec int, dstPath string) (*CopyFilesBuildPhase, error) {
	p, err := newPhase[*CopyFilesBuildPhase](d, t, KindCopyFilesBuildPhase)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.DstSubfolderSpec = Int(dstSubfolderSpec)
	p.DstPath = String(dstPath)
	return p, nil
}

// NewShellScriptBuildPhase appends a script phase to t.
func (d *Document) NewShellScriptBuildPhase(t Target, name, script string) (*ShellScriptBuildPhase, error) {
	p, err := newPhase[*ShellScriptBuildPhase](d, t, KindShellScriptBuildPhase)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.ShellScript = String(script)
	return p, nil
}

// AddFile places a file element or a package product in a phase. settings
// may be nil.
func (d *Document) AddFile(phase BuildPhase, file Object, settings *plist.Dict) (*BuildFile, error) {
	bf := &BuildFile{Settings: settings}
	switch f := file.(type) {
	case *PackageProductDependency:
		bf.ProductRef = f.Cell()
	case Element:
		bf.FileRef = f.Cell()
	default:
		return nil, fmt.Errorf("cannot add %s to a build phase", file.Kind())
	}
	if err := d.Insert(bf); err != nil {
		return nil, err
	}
	layer := phase.phaseLayer()
	layer.Files = append(layer.Files, bf.Cell())
	return bf, nil
}

// AddTargetDependency makes t depend on dep through a target dependency and
// its container item proxy.
func (d *Document) AddTargetDependency(t, dep Target) (*TargetDependency, error) {
	proxy := &ContainerItemProxy{
		ContainerPortal:      d.root,
		ProxyType:            Int(ProxyTypeTarget),
		RemoteGlobalIDString: dep.Cell(),
		RemoteInfo:           TargetName(dep),
	}
	if err := d.Insert(proxy); err != nil {
		return nil, err
	}
	td := &TargetDependency{Target: dep.Cell(), TargetProxy: proxy.Cell()}
	if err := d.Insert(td); err != nil {
		return nil, err
	}
	tl := t.targetLayer()
	tl.Dependencies = append(tl.Dependencies, td.Cell())
	return td, nil
}

// UpToNextMajorVersion is the usual requirement of a remote package.
func UpToNextMajorVersion(minimum string) *plist.Dict {
	req := plist.NewDict()
	req.SetString("kind", "upToNextMajorVersion")
	req.SetString("minimumVersion", minimum)
	return req
}

// AddRemotePackage adds a repository package to the project.
func (d *Document) AddRemotePackage(repositoryURL string, requirement *plist.Dict) (*RemotePackageReference, error) {
	p, err := d.Project()
	if err != nil {
		return nil, err
	}
	pkg := &RemotePackageReference{RepositoryURL: repositoryURL, Requirement: requirement}
	if err := d.Insert(pkg); err != nil {
		return nil, err
	}
	p.PackageReferences = append(p.PackageReferences, pkg.Cell())
	return pkg, nil
}

// AddLocalPackage adds a package on disk to the project.
func (d *Document) AddLocalPackage(relativePath string) (*LocalPackageReference, error) {
	p, err := d.Project()
	if err != nil {
		return nil, err
	}
	pkg := &LocalPackageReference{RelativePath: relativePath}
	if err := d.Insert(pkg); err != nil {
		return nil, err
	}
	p.PackageReferences = append(p.PackageReferences, pkg.Cell())
	return pkg, nil
}

// AddPackageProduct makes t use a product of pkg. pkg may be nil for
// products resolved by name alone.
func (d *Document) AddPackageProduct(t Target, pkg Object, productName string) (*PackageProductDependency, error) {
	dep := &PackageProductDependency{ProductName: productName}
	if pkg != nil {
		dep.Package = pkg.Cell()
	}
	if err := d.Insert(dep); err != nil {
		return nil, err
	}
	tl := t.targetLayer()
	tl.PackageProductDependencies = append(tl.PackageProductDependencies, dep.Cell())
	return dep, nil
}
