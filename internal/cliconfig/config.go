// Package cliconfig provides optional YAML configuration loading for the
// bguiparse CLI. It has no bearing on how bgui.Parse decodes a file —
// parsing remains a pure function of the input buffer — it only controls
// how the CLI renders output and which warnings it surfaces.
package cliconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how bguiparse renders a parsed file.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Color is the configured ANSI color mode for bguiparse. It is validated
// but has no effect on output: bguiparse emits no ANSI color codes.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// Config is the top-level CLI configuration structure for bguiparse.
type Config struct {
	// OutputFormat selects "text" (human-readable) or "json" (machine
	// readable) rendering of the parsed model. Defaults to "text".
	OutputFormat OutputFormat `yaml:"output_format"`

	// MinWarningLevel filters which warning kinds are printed; an empty
	// list means all warnings are printed. Values match WarningKind
	// String() output, e.g. "ResourceTruncated".
	MinWarningLevel []string `yaml:"min_warning_level"`

	// Color is validated but not used by the text renderer, which emits
	// no ANSI codes. Defaults to "auto".
	Color Color `yaml:"color"`
}

// Default returns the configuration bguiparse uses when no config file is
// supplied.
func Default() Config {
	return Config{
		OutputFormat: FormatText,
		Color:        ColorAuto,
	}
}

// Load reads and validates a YAML configuration file at path.
func Load(path string) (Config, error) {
	cfg := Default()

	//nolint:gosec // G304: operator-supplied config path is the intended use
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that OutputFormat and Color hold a recognized value.
// MinWarningLevel entries are not checked against the warning kind names.
func (c Config) Validate() error {
	switch c.OutputFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid output_format: %q", c.OutputFormat)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color: %q", c.Color)
	}

	return nil
}
