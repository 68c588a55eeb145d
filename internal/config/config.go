package config

import (
	"fmt"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/pbx"
	"github.com/vk/pbxproj/internal/pbxfile"
	"github.com/vk/pbxproj/internal/refgen"
)

// FileName is the configuration file looked up when no path is given.
const FileName = "pbxproj.hcl"

// Environment variables overriding file values.
const (
	EnvReferenceFormat = "PBXPROJ_REFERENCE_FORMAT"
	EnvLogLevel        = "PBXPROJ_LOG_LEVEL"
	EnvLogFormat       = "PBXPROJ_LOG_FORMAT"
)

// Config is the resolved tool configuration.
type Config struct {
	ReferenceFormat objectid.Format
	Unreachable     refgen.UnreachablePolicy
	SettingsOrder   string
	LogLevel        string
	LogFormat       string
	// Defaults are merged into the configurations of created targets.
	Defaults pbx.BuildSettings
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		ReferenceFormat: objectid.FormatHex,
		Unreachable:     refgen.Report,
		SettingsOrder:   "lexical",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Validate checks the values that are kept as strings.
func (c *Config) Validate() error {
	if _, err := ParseSettingsOrder(c.SettingsOrder); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}

// ParseSettingsOrder maps a configuration value onto a build settings order.
func ParseSettingsOrder(s string) (pbx.SettingsOrder, error) {
	switch s {
	case "", "lexical":
		return pbx.LexicalOrder, nil
	case "length":
		return pbx.LengthOrder, nil
	}
	return nil, fmt.Errorf("invalid settings order %q: must be 'lexical' or 'length'", s)
}

// Generator returns the identifier generator the configuration selects.
func (c *Config) Generator() refgen.Generator {
	return refgen.Generator{Format: c.ReferenceFormat, OnUnreachable: c.Unreachable}
}

// WriteOptions returns the project writer options the configuration selects.
func (c *Config) WriteOptions() pbxfile.Options {
	order, err := ParseSettingsOrder(c.SettingsOrder)
	if err != nil {
		order = pbx.LexicalOrder
	}
	return pbxfile.Options{SettingsOrder: order, Generator: c.Generator()}
}
