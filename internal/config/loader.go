package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/pbxproj/internal/ctxlog"
	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/refgen"
)

// fileRoot is the schema of the configuration file.
type fileRoot struct {
	ReferenceFormat *string        `hcl:"reference_format,optional"`
	Unreachable     *string        `hcl:"unreachable,optional"`
	SettingsOrder   *string        `hcl:"settings_order,optional"`
	LogLevel        *string        `hcl:"log_level,optional"`
	LogFormat       *string        `hcl:"log_format,optional"`
	Defaults        *defaultsBlock `hcl:"defaults,block"`
}

type defaultsBlock struct {
	BuildSettings hcl.Expression `hcl:"build_settings,optional"`
}

// Loader resolves configuration from a file, a .env file and the
// environment.
type Loader struct {
	// Environ lists the process environment. Defaults to os.Environ.
	Environ func() []string
}

// NewLoader creates a loader reading the real process environment.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// Load resolves the configuration. An empty path means FileName in the
// working directory. A missing file is not an error.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		path = FileName
	}

	env, err := l.environment(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}

	cfg := Default()
	src, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("No configuration file, using defaults.", "path", path)
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := l.decodeFile(ctx, cfg, path, src, env); err != nil {
			return nil, err
		}
		logger.Debug("Configuration file loaded.", "path", path)
	}

	if err := applyOverrides(cfg, env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// environment merges the .env file under the process environment.
func (l *Loader) environment(dotenvPath string) (map[string]string, error) {
	env, err := godotenv.Read(dotenvPath)
	if errors.Is(err, fs.ErrNotExist) {
		env = make(map[string]string)
	} else if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
	}

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	for _, kv := range environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

func (l *Loader) decodeFile(ctx context.Context, cfg *Config, path string, src []byte, env map[string]string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if root.ReferenceFormat != nil {
		f, err := objectid.ParseFormat(*root.ReferenceFormat)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.ReferenceFormat = f
	}
	if root.Unreachable != nil {
		p, err := refgen.ParseUnreachablePolicy(*root.Unreachable)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.Unreachable = p
	}
	setString(&cfg.SettingsOrder, root.SettingsOrder)
	setString(&cfg.LogLevel, root.LogLevel)
	setString(&cfg.LogFormat, root.LogFormat)

	if root.Defaults != nil && isExprDefined(ctx, root.Defaults.BuildSettings, "build_settings") {
		val, diags := root.Defaults.BuildSettings.Value(evalContext(env))
		if diags.HasErrors() {
			return fmt.Errorf("invalid build_settings in %s: %w", path, diags)
		}
		settings, err := buildSettingsFromCty(val)
		if err != nil {
			return fmt.Errorf("invalid build_settings in %s: %w", path, err)
		}
		cfg.Defaults = settings
	}
	return nil
}

// isExprDefined reports whether an optional attribute was written in the
// file. gohcl fills omitted expression fields with a zero-width placeholder.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checked optional attribute.", "attribute", attrName, "hcl_range", r.String(), "is_defined", defined)
	return defined
}

func evalContext(env map[string]string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		if hclIdentifier(k) {
			vars[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// hclIdentifier filters environment names that cannot be attribute names.
func hclIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

func applyOverrides(cfg *Config, env map[string]string) error {
	if v := env[EnvReferenceFormat]; v != "" {
		f, err := objectid.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReferenceFormat, err)
		}
		cfg.ReferenceFormat = f
	}
	if v := env[EnvLogLevel]; v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := env[EnvLogFormat]; v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
