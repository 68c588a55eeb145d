package pbx

import "sort"

// Record kinds, spelled as their isa values.
const (
	KindProject                  = "PBXProject"
	KindNativeTarget             = "PBXNativeTarget"
	KindAggregateTarget          = "PBXAggregateTarget"
	KindLegacyTarget             = "PBXLegacyTarget"
	KindGroup                    = "PBXGroup"
	KindFileReference            = "PBXFileReference"
	KindSyncRootGroup            = "PBXFileSystemSynchronizedRootGroup"
	KindSyncBuildFileExceptions  = "PBXFileSystemSynchronizedBuildFileExceptionSet"
	KindSyncPhaseExceptions      = "PBXFileSystemSynchronizedGroupBuildPhaseMembershipExceptionSet"
	KindSourcesBuildPhase        = "PBXSourcesBuildPhase"
	KindFrameworksBuildPhase     = "PBXFrameworksBuildPhase"
	KindResourcesBuildPhase      = "PBXResourcesBuildPhase"
	KindHeadersBuildPhase        = "PBXHeadersBuildPhase"
	KindCopyFilesBuildPhase      = "PBXCopyFilesBuildPhase"
	KindShellScriptBuildPhase    = "PBXShellScriptBuildPhase"
	KindRezBuildPhase            = "PBXRezBuildPhase"
	KindBuildFile                = "PBXBuildFile"
	KindBuildRule                = "PBXBuildRule"
	KindTargetDependency         = "PBXTargetDependency"
	KindContainerItemProxy       = "PBXContainerItemProxy"
	KindConfigurationList        = "XCConfigurationList"
	KindBuildConfiguration       = "XCBuildConfiguration"
	KindReferenceProxy           = "PBXReferenceProxy"
	KindVersionGroup             = "XCVersionGroup"
	KindVariantGroup             = "PBXVariantGroup"
	KindRemotePackageReference   = "XCRemoteSwiftPackageReference"
	KindLocalPackageReference    = "XCLocalSwiftPackageReference"
	KindPackageProductDependency = "XCSwiftPackageProductDependency"
)

type kindInfo struct {
	new     func() Object
	acronym string
}

var kinds = map[string]kindInfo{
	KindProject:                  {func() Object { return &Project{} }, "PROJ"},
	KindNativeTarget:             {func() Object { return &NativeTarget{} }, "TARGET"},
	KindAggregateTarget:          {func() Object { return &AggregateTarget{} }, "AGGTARGET"},
	KindLegacyTarget:             {func() Object { return &LegacyTarget{} }, "LEGACYTARGET"},
	KindGroup:                    {func() Object { return &Group{} }, "GROUP"},
	KindFileReference:            {func() Object { return &FileReference{} }, "FILEREF"},
	KindSyncRootGroup:            {func() Object { return &SyncRootGroup{} }, "SYNCGROUP"},
	KindSyncBuildFileExceptions:  {func() Object { return &SyncBuildFileExceptionSet{} }, "SYNCEXCEPT"},
	KindSyncPhaseExceptions:      {func() Object { return &SyncPhaseMembershipExceptionSet{} }, "SYNCPHASEEXCEPT"},
	KindSourcesBuildPhase:        {func() Object { return &SourcesBuildPhase{} }, "BP"},
	KindFrameworksBuildPhase:     {func() Object { return &FrameworksBuildPhase{} }, "BP"},
	KindResourcesBuildPhase:      {func() Object { return &ResourcesBuildPhase{} }, "BP"},
	KindHeadersBuildPhase:        {func() Object { return &HeadersBuildPhase{} }, "BP"},
	KindCopyFilesBuildPhase:      {func() Object { return &CopyFilesBuildPhase{} }, "BP"},
	KindShellScriptBuildPhase:    {func() Object { return &ShellScriptBuildPhase{} }, "BP"},
	KindRezBuildPhase:            {func() Object { return &RezBuildPhase{} }, "BP"},
	KindBuildFile:                {func() Object { return &BuildFile{} }, "BUILDFILE"},
	KindBuildRule:                {func() Object { return &BuildRule{} }, "BUILDRULE"},
	KindTargetDependency:         {func() Object { return &TargetDependency{} }, "DEPENDENCY"},
	KindContainerItemProxy:       {func() Object { return &ContainerItemProxy{} }, "PROXY"},
	KindConfigurationList:        {func() Object { return &ConfigurationList{} }, "CONFIGLIST"},
	KindBuildConfiguration:       {func() Object { return &BuildConfiguration{} }, "CONFIG"},
	KindReferenceProxy:           {func() Object { return &ReferenceProxy{} }, "REFPROXY"},
	KindVersionGroup:             {func() Object { return &VersionGroup{} }, "VERGROUP"},
	KindVariantGroup:             {func() Object { return &VariantGroup{} }, "VARGROUP"},
	KindRemotePackageReference:   {func() Object { return &RemotePackageReference{} }, "PACKAGE"},
	KindLocalPackageReference:    {func() Object { return &LocalPackageReference{} }, "LOCALPACKAGE"},
	KindPackageProductDependency: {func() Object { return &PackageProductDependency{} }, "PRODUCT"},
}

// Kinds returns every supported isa value, sorted.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Acronym returns the short kind label used by prefixed identifiers.
func Acronym(kind string) string {
	return kinds[kind].acronym
}

// NewObject creates an empty object of the given kind. ok is false for kinds
// outside the supported set.
func NewObject(kind string) (obj Object, ok bool) {
	info, ok := kinds[kind]
	if !ok {
		return nil, false
	}
	return info.new(), true
}
