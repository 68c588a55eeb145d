package pbx

import (
	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/plist"
)

// Project is the root object.
type Project struct {
	Base
	Attributes                       *plist.Dict       `pbx:"attributes,dict"`
	BuildConfigurationList           *objectref.Cell   `pbx:"buildConfigurationList,ref,required"`
	CompatibilityVersion             string            `pbx:"compatibilityVersion"`
	DevelopmentRegion                string            `pbx:"developmentRegion"`
	HasScannedForEncodings           *int              `pbx:"hasScannedForEncodings"`
	KnownRegions                     []string          `pbx:"knownRegions"`
	MainGroup                        *objectref.Cell   `pbx:"mainGroup,ref,required"`
	MinimizedProjectReferenceProxies *int              `pbx:"minimizedProjectReferenceProxies"`
	PackageReferences                []*objectref.Cell `pbx:"packageReferences,refs"`
	PreferredProjectObjectVersion    string            `pbx:"preferredProjectObjectVersion"`
	ProductRefGroup                  *objectref.Cell   `pbx:"productRefGroup,ref"`
	ProjectDirPath                   *string           `pbx:"projectDirPath"`
	ProjectRoot                      *string           `pbx:"projectRoot"`
	Targets                          []*objectref.Cell `pbx:"targets,refs"`

	// TargetAttributes is attributes.TargetAttributes, keyed by target.
	TargetAttributes []TargetAttributes
	// ProjectReferences lists referenced subprojects.
	ProjectReferences []ProjectReference
}

// TargetAttributes carries the per-target entry of the project attributes.
type TargetAttributes struct {
	Target *objectref.Cell
	// TestTarget is the TestTargetID entry, the target a test bundle runs in.
	TestTarget *objectref.Cell
	// Attributes holds the remaining entries.
	Attributes *plist.Dict
}

// ProjectReference links a subproject file to the group holding its products.
type ProjectReference struct {
	ProductGroup *objectref.Cell
	ProjectRef   *objectref.Cell
}

// target is the layer shared by all target kinds.
type target struct {
	BuildConfigurationList     *objectref.Cell   `pbx:"buildConfigurationList,ref"`
	BuildPhases                []*objectref.Cell `pbx:"buildPhases,refs"`
	Dependencies               []*objectref.Cell `pbx:"dependencies,refs"`
	Name                       string            `pbx:"name,required"`
	ProductName                string            `pbx:"productName"`
	PackageProductDependencies []*objectref.Cell `pbx:"packageProductDependencies,refs"`
}

func (t *target) targetLayer() *target { return t }

// Target is implemented by native, aggregate and legacy targets.
type Target interface {
	Object
	targetLayer() *target
}

// TargetName returns the name of any target kind.
func TargetName(t Target) string { return t.targetLayer().Name }

// TargetDependencies returns the dependency list of any target kind.
func TargetDependencies(t Target) []*objectref.Cell { return t.targetLayer().Dependencies }

// NativeTarget builds a product from sources.
type NativeTarget struct {
	Base
	target
	BuildRules                   []*objectref.Cell `pbx:"buildRules,refs"`
	FileSystemSynchronizedGroups []*objectref.Cell `pbx:"fileSystemSynchronizedGroups,refs"`
	ProductInstallPath           string            `pbx:"productInstallPath"`
	ProductReference             *objectref.Cell   `pbx:"productReference,ref"`
	ProductType                  string            `pbx:"productType"`
}

// AggregateTarget groups other targets.
type AggregateTarget struct {
	Base
	target
}

// LegacyTarget runs an external build tool.
type LegacyTarget struct {
	Base
	target
	BuildArgumentsString           string `pbx:"buildArgumentsString"`
	BuildToolPath                  string `pbx:"buildToolPath"`
	BuildWorkingDirectory          string `pbx:"buildWorkingDirectory"`
	PassBuildSettingsInEnvironment *bool  `pbx:"passBuildSettingsInEnvironment"`
}

// group is the layer shared by groups that own children.
type group struct {
	Children []*objectref.Cell `pbx:"children,refs"`
}

func (g *group) groupLayer() *group { return g }

// Container is a file element with ordered children.
type Container interface {
	Element
	groupLayer() *group
}

// ChildrenOf returns the children of any group kind.
func ChildrenOf(c Container) []*objectref.Cell { return c.groupLayer().Children }

// Group is a folder of the file tree.
type Group struct {
	Base
	FileElement
	group
}

// VariantGroup holds the localized variants of one resource.
type VariantGroup struct {
	Base
	FileElement
	group
}

// VersionGroup holds versions of a versioned resource such as a data model.
type VersionGroup struct {
	Base
	FileElement
	group
	CurrentVersion   *objectref.Cell `pbx:"currentVersion,ref"`
	VersionGroupType string          `pbx:"versionGroupType"`
}

// FileReference points at a file on disk.
type FileReference struct {
	Base
	FileElement
	ExplicitFileType                   string `pbx:"explicitFileType"`
	FileEncoding                       *int   `pbx:"fileEncoding"`
	LanguageSpecificationIdentifier    string `pbx:"languageSpecificationIdentifier"`
	LastKnownFileType                  string `pbx:"lastKnownFileType"`
	LineEnding                         *int   `pbx:"lineEnding"`
	PlistStructureDefinitionIdentifier string `pbx:"plistStructureDefinitionIdentifier"`
	XCLanguageSpecificationIdentifier  string `pbx:"xcLanguageSpecificationIdentifier"`
}

// ReferenceProxy stands for a product of another project.
type ReferenceProxy struct {
	Base
	FileElement
	FileType  string          `pbx:"fileType"`
	RemoteRef *objectref.Cell `pbx:"remoteRef,ref"`
}

// SyncRootGroup is a folder whose contents are synchronized from disk.
type SyncRootGroup struct {
	Base
	FileElement
	Exceptions        []*objectref.Cell `pbx:"exceptions,refs"`
	ExplicitFileTypes *plist.Dict       `pbx:"explicitFileTypes,dict"`
	ExplicitFolders   []string          `pbx:"explicitFolders"`
}

// SyncBuildFileExceptionSet adjusts target membership of synchronized files.
type SyncBuildFileExceptionSet struct {
	Base
	AdditionalCompilerFlagsByRelativePath *plist.Dict     `pbx:"additionalCompilerFlagsByRelativePath,dict"`
	AttributesByRelativePath              *plist.Dict     `pbx:"attributesByRelativePath,dict"`
	MembershipExceptions                  []string        `pbx:"membershipExceptions"`
	PrivateHeaders                        []string        `pbx:"privateHeaders"`
	PublicHeaders                         []string        `pbx:"publicHeaders"`
	Target                                *objectref.Cell `pbx:"target,ref,required"`
}

// SyncPhaseMembershipExceptionSet adjusts build phase membership of
// synchronized files.
type SyncPhaseMembershipExceptionSet struct {
	Base
	AttributesByRelativePath *plist.Dict     `pbx:"attributesByRelativePath,dict"`
	BuildPhase               *objectref.Cell `pbx:"buildPhase,ref,required"`
	MembershipExceptions     []string        `pbx:"membershipExceptions"`
}

// buildPhase is the layer shared by all build phases.
type buildPhase struct {
	BuildActionMask                    *int              `pbx:"buildActionMask"`
	Files                              []*objectref.Cell `pbx:"files,refs"`
	Name                               string            `pbx:"name"`
	RunOnlyForDeploymentPostprocessing *bool             `pbx:"runOnlyForDeploymentPostprocessing"`
}

func (p *buildPhase) phaseLayer() *buildPhase { return p }

// BuildPhase is implemented by every build phase kind.
type BuildPhase interface {
	Object
	phaseLayer() *buildPhase
}

// FilesOf returns the build files of any phase.
func FilesOf(p BuildPhase) []*objectref.Cell { return p.phaseLayer().Files }

// SourcesBuildPhase compiles sources.
type SourcesBuildPhase struct {
	Base
	buildPhase
}

// FrameworksBuildPhase links libraries and frameworks.
type FrameworksBuildPhase struct {
	Base
	buildPhase
}

// ResourcesBuildPhase copies bundle resources.
type ResourcesBuildPhase struct {
	Base
	buildPhase
}

// HeadersBuildPhase copies headers.
type HeadersBuildPhase struct {
	Base
	buildPhase
}

// RezBuildPhase compiles Carbon resources.
type RezBuildPhase struct {
	Base
	buildPhase
}

// CopyFilesBuildPhase copies files to a destination.
type CopyFilesBuildPhase struct {
	Base
	buildPhase
	DstPath          *string `pbx:"dstPath"`
	DstSubfolderSpec *int    `pbx:"dstSubfolderSpec"`
}

// ShellScriptBuildPhase runs a script.
type ShellScriptBuildPhase struct {
	Base
	buildPhase
	AlwaysOutOfDate     *bool    `pbx:"alwaysOutOfDate"`
	DependencyFile      string   `pbx:"dependencyFile"`
	InputFileListPaths  []string `pbx:"inputFileListPaths"`
	InputPaths          []string `pbx:"inputPaths"`
	OutputFileListPaths []string `pbx:"outputFileListPaths"`
	OutputPaths         []string `pbx:"outputPaths"`
	ShellPath           string   `pbx:"shellPath"`
	ShellScript         *string  `pbx:"shellScript"`
	ShowEnvVarsInLog    *bool    `pbx:"showEnvVarsInLog"`
}

// BuildFile places a file or package product in a build phase.
type BuildFile struct {
	Base
	FileRef         *objectref.Cell `pbx:"fileRef,ref"`
	PlatformFilter  string          `pbx:"platformFilter"`
	PlatformFilters []string        `pbx:"platformFilters"`
	ProductRef      *objectref.Cell `pbx:"productRef,ref"`
	Settings        *plist.Dict     `pbx:"settings,dict"`
}

// BuildRule maps a file type onto a compiler or script.
type BuildRule struct {
	Base
	CompilerSpec             string   `pbx:"compilerSpec,required"`
	DependencyFile           string   `pbx:"dependencyFile"`
	FilePatterns             string   `pbx:"filePatterns"`
	FileType                 string   `pbx:"fileType,required"`
	InputFiles               []string `pbx:"inputFiles"`
	IsEditable               *bool    `pbx:"isEditable"`
	Name                     string   `pbx:"name"`
	OutputFiles              []string `pbx:"outputFiles"`
	OutputFilesCompilerFlags []string `pbx:"outputFilesCompilerFlags"`
	RunOncePerArchitecture   *bool    `pbx:"runOncePerArchitecture"`
	Script                   *string  `pbx:"script"`
}

// TargetDependency makes one target depend on another.
type TargetDependency struct {
	Base
	Name            string          `pbx:"name"`
	PlatformFilter  string          `pbx:"platformFilter"`
	PlatformFilters []string        `pbx:"platformFilters"`
	ProductRef      *objectref.Cell `pbx:"productRef,ref"`
	Target          *objectref.Cell `pbx:"target,ref"`
	TargetProxy     *objectref.Cell `pbx:"targetProxy,ref"`
}

// Proxy types of a container item proxy.
const (
	ProxyTypeTarget    = 1
	ProxyTypeReference = 2
)

// ContainerItemProxy points at an object inside a project, possibly another
// project file.
type ContainerItemProxy struct {
	Base
	ContainerPortal      *objectref.Cell `pbx:"containerPortal,ref,required"`
	ProxyType            *int            `pbx:"proxyType"`
	RemoteGlobalIDString *objectref.Cell `pbx:"remoteGlobalIDString,ref,nocomment"`
	RemoteInfo           string          `pbx:"remoteInfo"`
}

// ConfigurationList holds the build configurations of a project or target.
type ConfigurationList struct {
	Base
	BuildConfigurations           []*objectref.Cell `pbx:"buildConfigurations,refs,required"`
	DefaultConfigurationIsVisible *int              `pbx:"defaultConfigurationIsVisible"`
	DefaultConfigurationName      string            `pbx:"defaultConfigurationName"`
}

// BuildConfiguration is one named set of build settings.
type BuildConfiguration struct {
	Base
	BaseConfigurationReference *objectref.Cell `pbx:"baseConfigurationReference,ref"`
	BuildSettings              BuildSettings   `pbx:"buildSettings,settings"`
	Name                       string          `pbx:"name,required"`
}

// RemotePackageReference is a package fetched from a repository.
type RemotePackageReference struct {
	Base
	RepositoryURL string      `pbx:"repositoryURL"`
	Requirement   *plist.Dict `pbx:"requirement,dict"`
}

// LocalPackageReference is a package on disk.
type LocalPackageReference struct {
	Base
	RelativePath string `pbx:"relativePath,required"`
}

// PackageProductDependency is a product of a package used by a target.
type PackageProductDependency struct {
	Base
	Package     *objectref.Cell `pbx:"package,ref"`
	ProductName string          `pbx:"productName,required"`
}

func (*Project) Kind() string                         { return KindProject }
func (*NativeTarget) Kind() string                    { return KindNativeTarget }
func (*AggregateTarget) Kind() string                 { return KindAggregateTarget }
func (*LegacyTarget) Kind() string                    { return KindLegacyTarget }
func (*Group) Kind() string                           { return KindGroup }
func (*VariantGroup) Kind() string                    { return KindVariantGroup }
func (*VersionGroup) Kind() string                    { return KindVersionGroup }
func (*FileReference) Kind() string                   { return KindFileReference }
func (*ReferenceProxy) Kind() string                  { return KindReferenceProxy }
func (*SyncRootGroup) Kind() string                   { return KindSyncRootGroup }
func (*SyncBuildFileExceptionSet) Kind() string       { return KindSyncBuildFileExceptions }
func (*SyncPhaseMembershipExceptionSet) Kind() string { return KindSyncPhaseExceptions }
func (*SourcesBuildPhase) Kind() string               { return KindSourcesBuildPhase }
func (*FrameworksBuildPhase) Kind() string            { return KindFrameworksBuildPhase }
func (*ResourcesBuildPhase) Kind() string             { return KindResourcesBuildPhase }
func (*HeadersBuildPhase) Kind() string               { return KindHeadersBuildPhase }
func (*RezBuildPhase) Kind() string                   { return KindRezBuildPhase }
func (*CopyFilesBuildPhase) Kind() string             { return KindCopyFilesBuildPhase }
func (*ShellScriptBuildPhase) Kind() string           { return KindShellScriptBuildPhase }
func (*BuildFile) Kind() string                       { return KindBuildFile }
func (*BuildRule) Kind() string                       { return KindBuildRule }
func (*TargetDependency) Kind() string                { return KindTargetDependency }
func (*ContainerItemProxy) Kind() string              { return KindContainerItemProxy }
func (*ConfigurationList) Kind() string               { return KindConfigurationList }
func (*BuildConfiguration) Kind() string              { return KindBuildConfiguration }
func (*RemotePackageReference) Kind() string          { return KindRemotePackageReference }
func (*LocalPackageReference) Kind() string           { return KindLocalPackageReference }
func (*PackageProductDependency) Kind() string        { return KindPackageProductDependency }
