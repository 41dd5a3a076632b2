// Package config handles configuration loading, validation, and
// hot-reloading for the typewitness tools.
package config

import (
	"fmt"
	"os"

	"typewitness/internal/proof"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete tool configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Export controls what exported proofs contain.
	Export ExportConfig `toml:"export" json:"export" yaml:"export"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Report configuration for human-readable output.
	Report ReportConfig `toml:"report" json:"report" yaml:"report"`
}

// ExportConfig selects proof export behavior.
type ExportConfig struct {
	// Preset is one of "standard", "minimal", "redacted", "full", or
	// "custom". With "custom" the three toggles below apply; any
	// named preset ignores them.
	Preset string `toml:"preset" json:"preset" yaml:"preset"`

	// IncludeRawEvents exports per-keystroke timing records.
	IncludeRawEvents bool `toml:"include_raw_events" json:"include_raw_events" yaml:"include_raw_events"`

	// IncludeContentVerification exports the final text's length and
	// SHA-256 digest.
	IncludeContentVerification bool `toml:"include_content_verification" json:"include_content_verification" yaml:"include_content_verification"`

	// RedactCharacters replaces exported characters with "*".
	RedactCharacters bool `toml:"redact_characters" json:"redact_characters" yaml:"redact_characters"`
}

// PresetCustom selects the freeform toggles instead of a named preset.
const PresetCustom = "custom"

// Options resolves the export configuration to proof options.
func (e ExportConfig) Options() (proof.Options, error) {
	if e.Preset == PresetCustom {
		return proof.Options{
			IncludeRawEvents:           e.IncludeRawEvents,
			IncludeContentVerification: e.IncludeContentVerification,
			RedactCharacters:           e.RedactCharacters,
		}, nil
	}
	return proof.ParsePreset(e.Preset)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is "stdout", "stderr", or "file".
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the log file path when Output is "file". Empty
	// selects the platform default.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// ReportConfig holds human-readable report configuration.
type ReportConfig struct {
	// Format is "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Version <= 0 {
		return fmt.Errorf("version must be positive, got %d", c.Version)
	}
	if c.Version > Version {
		return fmt.Errorf("version %d is newer than supported version %d", c.Version, Version)
	}

	if c.Export.Preset != PresetCustom {
		if _, err := proof.ParsePreset(c.Export.Preset); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "stdout", "stderr", "file":
	default:
		return fmt.Errorf("logging: unknown output %q", c.Logging.Output)
	}

	switch c.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("report: unknown format %q", c.Report.Format)
	}

	return nil
}

// ApplyEnvOverrides applies TYPEWITNESS_* environment variables on top
// of the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TYPEWITNESS_EXPORT_PRESET"); v != "" {
		c.Export.Preset = v
	}
	if v := os.Getenv("TYPEWITNESS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TYPEWITNESS_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("TYPEWITNESS_REPORT_FORMAT"); v != "" {
		c.Report.Format = v
	}
}
