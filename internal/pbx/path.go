package pbx

import (
	"fmt"
	"path"
	"strings"

	"github.com/vk/pbxproj/internal/objectref"
)

// maxPathDepth bounds the upward walk so a corrupt parent cycle fails
// instead of looping.
const maxPathDepth = 256

// PathBases are the directories the named source trees resolve against.
type PathBases struct {
	SourceRoot       string
	BuildProductsDir string
	SDKRoot          string
	DeveloperDir     string
	// Variables resolves any other named source tree.
	Variables map[string]string
}

// FullPath derives the location of a file element by walking up through its
// parent groups. A variant group resolves through its Base variant.
func (d *Document) FullPath(elem Element, bases PathBases) (string, error) {
	if vg, ok := elem.(*VariantGroup); ok {
		base, err := baseVariant(vg)
		if err != nil {
			return "", err
		}
		elem = base
	}
	return d.resolvePath(elem, bases, 0)
}

func (d *Document) resolvePath(elem Element, bases PathBases, depth int) (string, error) {
	if depth > maxPathDepth {
		return "", fmt.Errorf("%w: parent chain of %s is too deep", ErrInvalidGroupPath, elem.ID())
	}
	el := elem.fileElement()

	switch el.SourceTree {
	case SourceTreeAbsolute:
		return el.Path, nil
	case SourceTreeGroup:
		dir, err := d.parentDir(elem, bases, depth)
		if err != nil {
			return "", err
		}
		return join(dir, el.Path), nil
	case SourceTreeSourceRoot:
		return join(bases.SourceRoot, el.Path), nil
	case SourceTreeBuiltProductsDir:
		return join(bases.BuildProductsDir, el.Path), nil
	case SourceTreeSDKRoot:
		return join(bases.SDKRoot, el.Path), nil
	case SourceTreeDeveloperDir:
		return join(bases.DeveloperDir, el.Path), nil
	case "":
		return "", fmt.Errorf("%w: %s has no source tree", ErrInvalidGroupPath, elem.ID())
	}
	if base, ok := bases.Variables[el.SourceTree]; ok {
		return join(base, el.Path), nil
	}
	return "", fmt.Errorf("%w: %s uses unsupported source tree %q", ErrInvalidGroupPath, elem.ID(), el.SourceTree)
}

// parentDir is the directory a group-relative element resolves against.
func (d *Document) parentDir(elem Element, bases PathBases, depth int) (string, error) {
	parentCell := elem.fileElement().parent
	if parentCell == nil {
		if d.isMainGroup(elem) {
			return bases.SourceRoot, nil
		}
		return "", fmt.Errorf("%w: %s has no parent group", ErrInvalidGroupPath, elem.ID())
	}
	parent, err := objectref.As[Element](parentCell)
	if err != nil {
		return "", fmt.Errorf("%w: parent of %s: %v", ErrInvalidGroupPath, elem.ID(), err)
	}
	return d.resolvePath(parent, bases, depth+1)
}

func (d *Document) isMainGroup(elem Element) bool {
	p, err := d.Project()
	if err != nil {
		return false
	}
	return p.MainGroup == elem.Cell()
}

// baseVariant finds the child holding the Base localization.
func baseVariant(vg *VariantGroup) (Element, error) {
	for _, c := range vg.Children {
		el, err := objectref.As[Element](c)
		if err != nil {
			continue
		}
		fe := el.fileElement()
		if fe.Name == "Base" || strings.HasPrefix(fe.Path, "Base.lproj/") {
			return el, nil
		}
	}
	return nil, fmt.Errorf("%w: variant group %s has no Base variant", ErrInvalidGroupPath, vg.ID())
}

func join(dir, p string) string {
	if p == "" {
		return dir
	}
	if dir == "" {
		return p
	}
	return path.Join(dir, p)
}
