package app

import (
	"context"
	"fmt"

	"github.com/vk/pbxproj/internal/objectref"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/pbxfile"
)

// AddTargetRequest describes a target to create.
type AddTargetRequest struct {
	Name        string
	ProductType string
	// DependsOn names existing targets the new one depends on.
	DependsOn []string
}

// AddTargetResult reports the created target.
type AddTargetResult struct {
	Path     string
	ID       string
	Assigned int
}

// AddTarget creates a native target with sources, frameworks and resources
// phases, applies the configured default build settings to its
// configurations and saves the project.
func (a *App) AddTarget(ctx context.Context, path string, req AddTargetRequest) (AddTargetResult, error) {
	ctx = a.context(ctx)
	files, err := projectFiles(path)
	if err != nil {
		return AddTargetResult{}, err
	}
	if len(files) != 1 {
		return AddTargetResult{}, fmt.Errorf("%s holds %d projects, name one bundle", path, len(files))
	}
	file := files[0]

	doc, err := a.loadProject(ctx, file)
	if err != nil {
		return AddTargetResult{}, err
	}
	existing, err := doc.Targets()
	if err != nil {
		return AddTargetResult{}, err
	}
	byName := make(map[string]pbx.Target, len(existing))
	for _, t := range existing {
		byName[pbx.TargetName(t)] = t
	}
	if _, dup := byName[req.Name]; dup {
		return AddTargetResult{}, fmt.Errorf("target %q already exists", req.Name)
	}

	target, err := doc.NewNativeTarget(req.Name, req.ProductType)
	if err != nil {
		return AddTargetResult{}, err
	}
	if err := a.applyDefaults(target); err != nil {
		return AddTargetResult{}, err
	}
	if _, err := doc.NewSourcesBuildPhase(target); err != nil {
		return AddTargetResult{}, err
	}
	if _, err := doc.NewFrameworksBuildPhase(target); err != nil {
		return AddTargetResult{}, err
	}
	if _, err := doc.NewResourcesBuildPhase(target); err != nil {
		return AddTargetResult{}, err
	}
	for _, name := range req.DependsOn {
		dep, ok := byName[name]
		if !ok {
			return AddTargetResult{}, fmt.Errorf("dependency target %q not found", name)
		}
		if _, err := doc.AddTargetDependency(target, dep); err != nil {
			return AddTargetResult{}, err
		}
	}

	res, err := pbxfile.Save(ctx, file, doc, a.cfg.WriteOptions())
	if err != nil {
		return AddTargetResult{}, err
	}
	a.logger.Info("Target added.", "path", file, "target", req.Name, "id", target.ID())
	return AddTargetResult{Path: file, ID: target.ID().String(), Assigned: len(res.Assigned)}, nil
}

func (a *App) applyDefaults(t *pbx.NativeTarget) error {
	if len(a.cfg.Defaults) == 0 {
		return nil
	}
	list, err := objectref.As[*pbx.ConfigurationList](t.BuildConfigurationList)
	if err != nil {
		return err
	}
	for _, c := range list.BuildConfigurations {
		cfg, err := objectref.As[*pbx.BuildConfiguration](c)
		if err != nil {
			return err
		}
		cfg.BuildSettings.Merge(a.cfg.Defaults.Clone())
	}
	return nil
}
