package config

import "typewitness/internal/proof"

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Export: ExportConfig{
			Preset: proof.PresetStandard,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Report: ReportConfig{
			Format: "text",
		},
	}
}
