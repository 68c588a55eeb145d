package pbx

import (
	"fmt"
	"path"
	"strings"

	"github.com/vk/pbxproj/internal/objectref"
)

// Names computes the display names written as comments next to identifiers.
// Some names depend on the owner of an object, so Names indexes ownership
// once; build a new one after mutating the graph.
type Names struct {
	doc         *Document
	phaseOf     map[*objectref.Cell]BuildPhase
	listOwner   map[*objectref.Cell]Object
	syncGroupOf map[*objectref.Cell]*SyncRootGroup
	targetOf    map[*objectref.Cell]Target
}

// Names indexes the document for display names.
func (d *Document) Names() *Names {
	n := &Names{
		doc:         d,
		phaseOf:     make(map[*objectref.Cell]BuildPhase),
		listOwner:   make(map[*objectref.Cell]Object),
		syncGroupOf: make(map[*objectref.Cell]*SyncRootGroup),
		targetOf:    make(map[*objectref.Cell]Target),
	}
	for _, obj := range d.Objects() {
		switch o := obj.(type) {
		case *Project:
			n.own(o.BuildConfigurationList, o)
		case Target:
			t := o.targetLayer()
			n.own(t.BuildConfigurationList, o)
			for _, c := range t.BuildPhases {
				if c != nil {
					n.targetOf[c] = o
				}
			}
		case *SyncRootGroup:
			for _, c := range o.Exceptions {
				if c != nil {
					n.syncGroupOf[c] = o
				}
			}
		}
		if p, ok := obj.(BuildPhase); ok {
			for _, c := range FilesOf(p) {
				if c != nil {
					n.phaseOf[c] = p
				}
			}
		}
	}
	return n
}

func (n *Names) own(list *objectref.Cell, owner Object) {
	if list != nil {
		n.listOwner[list] = owner
	}
}

// Name returns the display name of obj, or "" when it has none.
func (n *Names) Name(obj Object) string {
	switch o := obj.(type) {
	case *Project:
		return "Project object"
	case Target:
		return o.targetLayer().Name
	case *BuildFile:
		return n.buildFileName(o)
	case BuildPhase:
		return PhaseName(o)
	case *BuildConfiguration:
		return o.Name
	case *ConfigurationList:
		owner, ok := n.listOwner[o.Cell()]
		if !ok {
			return ""
		}
		return fmt.Sprintf("Build configuration list for %s %q", owner.Kind(), n.ownerName(owner))
	case Element:
		return elementName(o.fileElement())
	case *SyncBuildFileExceptionSet:
		return n.exceptionSetName(o.Cell(), o.Target, "")
	case *SyncPhaseMembershipExceptionSet:
		return n.phaseExceptionSetName(o)
	case *BuildRule, *TargetDependency, *ContainerItemProxy:
		return obj.Kind()
	case *RemotePackageReference:
		return fmt.Sprintf("%s %q", KindRemotePackageReference, RepositoryName(o.RepositoryURL))
	case *LocalPackageReference:
		return fmt.Sprintf("%s %q", KindLocalPackageReference, o.RelativePath)
	case *PackageProductDependency:
		return o.ProductName
	}
	return ""
}

func (n *Names) ownerName(owner Object) string {
	if _, ok := owner.(*Project); ok {
		return n.doc.Name
	}
	return n.Name(owner)
}

func (n *Names) buildFileName(bf *BuildFile) string {
	var file string
	if obj, err := Resolve(bf.FileRef); err == nil {
		file = n.Name(obj)
	} else if obj, err := Resolve(bf.ProductRef); err == nil {
		file = n.Name(obj)
	}
	phase, ok := n.phaseOf[bf.Cell()]
	if !ok {
		return file
	}
	return file + " in " + PhaseName(phase)
}

func (n *Names) exceptionSetName(set, targetCell *objectref.Cell, phase string) string {
	folder := ""
	if g, ok := n.syncGroupOf[set]; ok {
		folder = elementName(&g.FileElement)
	}
	target := ""
	if obj, err := Resolve(targetCell); err == nil {
		target = n.Name(obj)
	}
	if phase != "" {
		return fmt.Sprintf("Exceptions for %q folder in %q phase from %q target", folder, phase, target)
	}
	return fmt.Sprintf("Exceptions for %q folder in %q target", folder, target)
}

func (n *Names) phaseExceptionSetName(set *SyncPhaseMembershipExceptionSet) string {
	obj, err := Resolve(set.BuildPhase)
	if err != nil {
		return n.exceptionSetName(set.Cell(), nil, "")
	}
	phase, ok := obj.(BuildPhase)
	if !ok {
		return n.exceptionSetName(set.Cell(), nil, "")
	}
	var targetCell *objectref.Cell
	if t, ok := n.targetOf[phase.Cell()]; ok {
		targetCell = t.Cell()
	}
	return n.exceptionSetName(set.Cell(), targetCell, PhaseName(phase))
}

// PhaseName returns the phase's name, or the default name of its kind.
func PhaseName(p BuildPhase) string {
	if name := p.phaseLayer().Name; name != "" {
		return name
	}
	switch p.Kind() {
	case KindSourcesBuildPhase:
		return "Sources"
	case KindFrameworksBuildPhase:
		return "Frameworks"
	case KindResourcesBuildPhase:
		return "Resources"
	case KindHeadersBuildPhase:
		return "Headers"
	case KindCopyFilesBuildPhase:
		return "CopyFiles"
	case KindShellScriptBuildPhase:
		return "ShellScript"
	case KindRezBuildPhase:
		return "Rez"
	}
	return ""
}

// RepositoryName derives a package name from its repository URL.
func RepositoryName(url string) string {
	if url == "" {
		return ""
	}
	name := path.Base(strings.TrimSuffix(url, "/"))
	return strings.TrimSuffix(name, ".git")
}

func elementName(el *FileElement) string {
	if el.Name != "" {
		return el.Name
	}
	return el.Path
}
