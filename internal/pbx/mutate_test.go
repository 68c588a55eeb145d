package pbx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pbxproj/internal/objectref"
)

func TestNew_ProjectSkeleton(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)

	project, err := doc.Project()
	require.NoError(t, err)
	assert.True(t, project.ID().IsTemporary())

	main, err := objectref.As[*Group](project.MainGroup)
	require.NoError(t, err)
	products, err := objectref.As[*Group](project.ProductRefGroup)
	require.NoError(t, err)
	assert.Equal(t, "Products", products.Name)
	assert.Same(t, main.Cell(), products.Parent())

	list, err := objectref.As[*ConfigurationList](project.BuildConfigurationList)
	require.NoError(t, err)
	require.Len(t, list.BuildConfigurations, 2)
	assert.Equal(t, "Release", list.DefaultConfigurationName)

	assert.Len(t, doc.TemporaryObjects(), doc.Store().Len())
}

func TestNewNativeTarget(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)

	app, err := doc.NewNativeTarget("Demo", "com.apple.product-type.application")
	require.NoError(t, err)

	targets, err := doc.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Same(t, app, targets[0])

	product, err := objectref.As[*FileReference](app.ProductReference)
	require.NoError(t, err)
	assert.Equal(t, "Demo.app", product.Path)
	assert.Equal(t, SourceTreeBuiltProductsDir, product.SourceTree)
	assert.Equal(t, "wrapper.application", product.ExplicitFileType)

	list, err := objectref.As[*ConfigurationList](app.BuildConfigurationList)
	require.NoError(t, err)
	for _, c := range list.BuildConfigurations {
		cfg, err := objectref.As[*BuildConfiguration](c)
		require.NoError(t, err)
		assert.Equal(t, Scalar("$(TARGET_NAME)"), cfg.BuildSettings["PRODUCT_NAME"])
	}

	_, err = doc.NewNativeTarget("Bad", "com.example.unknown")
	assert.Error(t, err)
}

func TestBuildPhasesAndFiles(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)
	project, err := doc.Project()
	require.NoError(t, err)
	main, err := objectref.As[*Group](project.MainGroup)
	require.NoError(t, err)

	app, err := doc.NewNativeTarget("Demo", "com.apple.product-type.application")
	require.NoError(t, err)
	sources, err := doc.NewSourcesBuildPhase(app)
	require.NoError(t, err)
	script, err := doc.NewShellScriptBuildPhase(app, "Lint", "swiftlint")
	require.NoError(t, err)
	embed, err := doc.NewCopyFilesBuildPhase(app, "Embed Frameworks", DstFrameworks, "")
	require.NoError(t, err)

	file, err := doc.NewFileReference(main, "Sources/App.swift")
	require.NoError(t, err)
	assert.Equal(t, "sourcecode.swift", file.LastKnownFileType)
	assert.Equal(t, "App.swift", file.Name)

	bf, err := doc.AddFile(sources, file, nil)
	require.NoError(t, err)
	assert.Same(t, file.Cell(), bf.FileRef)
	assert.Equal(t, []*objectref.Cell{bf.Cell()}, FilesOf(sources))

	assert.Equal(t, []*objectref.Cell{sources.Cell(), script.Cell(), embed.Cell()}, app.BuildPhases)
	assert.Equal(t, "Lint", PhaseName(script))
	assert.Equal(t, "Sources", PhaseName(sources))
	require.NotNil(t, embed.DstSubfolderSpec)
	assert.Equal(t, DstFrameworks, *embed.DstSubfolderSpec)

	_, err = doc.AddFile(sources, app, nil)
	assert.Error(t, err, "targets cannot be build files")

	_, err = doc.NewBuildPhase(app, KindGroup)
	assert.Error(t, err)
}

func TestAddTargetDependency(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)
	app, err := doc.NewNativeTarget("App", "com.apple.product-type.application")
	require.NoError(t, err)
	tests, err := doc.NewNativeTarget("AppTests", "com.apple.product-type.bundle.unit-test")
	require.NoError(t, err)

	dep, err := doc.AddTargetDependency(tests, app)
	require.NoError(t, err)
	assert.Equal(t, []*objectref.Cell{dep.Cell()}, tests.Dependencies)
	assert.Same(t, app.Cell(), dep.Target)

	proxy, err := objectref.As[*ContainerItemProxy](dep.TargetProxy)
	require.NoError(t, err)
	assert.Same(t, doc.Root(), proxy.ContainerPortal)
	assert.Same(t, app.Cell(), proxy.RemoteGlobalIDString)
	assert.Equal(t, "App", proxy.RemoteInfo)
}

func TestPackages(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)
	app, err := doc.NewNativeTarget("App", "com.apple.product-type.application")
	require.NoError(t, err)

	remote, err := doc.AddRemotePackage("https://github.com/apple/swift-log.git", UpToNextMajorVersion("1.5.0"))
	require.NoError(t, err)
	local, err := doc.AddLocalPackage("../Core")
	require.NoError(t, err)
	product, err := doc.AddPackageProduct(app, remote, "Logging")
	require.NoError(t, err)

	project, err := doc.Project()
	require.NoError(t, err)
	assert.Equal(t, []*objectref.Cell{remote.Cell(), local.Cell()}, project.PackageReferences)
	assert.Equal(t, []*objectref.Cell{product.Cell()}, app.PackageProductDependencies)

	frameworks, err := doc.NewFrameworksBuildPhase(app)
	require.NoError(t, err)
	bf, err := doc.AddFile(frameworks, product, nil)
	require.NoError(t, err)
	assert.Same(t, product.Cell(), bf.ProductRef)
	assert.Nil(t, bf.FileRef)
}

func TestRemoveChildAndMove(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)
	a, err := doc.NewGroup(nil, "A", "")
	require.NoError(t, err)
	b, err := doc.NewGroup(nil, "B", "")
	require.NoError(t, err)
	file, err := doc.NewFileReference(a, "x.c")
	require.NoError(t, err)

	AddChild(b, file)
	assert.Empty(t, a.Children)
	assert.Equal(t, []*objectref.Cell{file.Cell()}, b.Children)
	assert.Same(t, b.Cell(), file.Parent())

	assert.True(t, RemoveChild(b, file))
	assert.False(t, RemoveChild(b, file))
	assert.Nil(t, file.Parent())
}

func TestDeleteAndRelease(t *testing.T) {
	doc, err := New("Demo")
	require.NoError(t, err)
	g, err := doc.NewGroup(nil, "A", "")
	require.NoError(t, err)
	cell := g.Cell()

	_, err = Resolve(cell)
	require.NoError(t, err)
	require.NoError(t, doc.Delete(g))
	_, err = Resolve(cell)
	assert.ErrorIs(t, err, objectref.ErrObjectNotFound)
	assert.Error(t, doc.Delete(g))

	root := doc.Root()
	doc.Release()
	_, err = Resolve(root)
	assert.True(t, errors.Is(err, objectref.ErrStoreReleased))
}
