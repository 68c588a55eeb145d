package app

import (
	"context"
	"strings"

	"github.com/vk/pbxproj/internal/config"
)

// Options are the command-line values that take part in configuration.
// Empty values leave the loaded configuration alone.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// LoadConfig resolves the configuration file, the environment and the
// command-line overrides, in increasing priority.
func LoadConfig(ctx context.Context, loader *config.Loader, opts Options) (*config.Config, error) {
	cfg, err := loader.Load(ctx, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(opts.LogLevel)
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(opts.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
