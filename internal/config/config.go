// Package config provides configuration structures and loading for golaps.
package config

import "path/filepath"

// Config represents the complete application configuration.
type Config struct {
	Input        InputConfig        `yaml:"input" mapstructure:"input"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Ranking      RankingConfig      `yaml:"ranking" mapstructure:"ranking"`
	Validation   ValidationConfig   `yaml:"validation" mapstructure:"validation"`
	Verification VerificationConfig `yaml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// InputConfig locates the lap timing file.
type InputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig locates the two result artifacts.
// CSV and JSON are resolved against Dir unless they are absolute.
type OutputConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	CSV  string `yaml:"csv" mapstructure:"csv"`
	JSON string `yaml:"json" mapstructure:"json"`
}

// RankingConfig controls the top-N selection.
type RankingConfig struct {
	TopN int `yaml:"top_n" mapstructure:"top_n"`
}

// ValidationConfig holds the dataset-wide acceptance thresholds.
type ValidationConfig struct {
	MinDrivers       int `yaml:"min_drivers" mapstructure:"min_drivers"`
	MinLapsPerDriver int `yaml:"min_laps_per_driver" mapstructure:"min_laps_per_driver"`
}

// VerificationConfig represents artifact verification settings.
type VerificationConfig struct {
	Method string `yaml:"method" mapstructure:"method"` // "roundtrip", "count" or "skip"
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path: "f1_lap_times.csv",
		},
		Output: OutputConfig{
			Dir:  ".",
			CSV:  "top_3_drivers.csv",
			JSON: "top_3_drivers.json",
		},
		Ranking: RankingConfig{
			TopN: 3,
		},
		Validation: ValidationConfig{
			MinDrivers:       10,
			MinLapsPerDriver: 3,
		},
		Verification: VerificationConfig{
			Method: "roundtrip",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// OutputPaths returns the CSV and JSON artifact paths.
func (c *Config) OutputPaths() (csvPath, jsonPath string) {
	return c.resolveOutput(c.Output.CSV), c.resolveOutput(c.Output.JSON)
}

func (c *Config) resolveOutput(name string) string {
	if filepath.IsAbs(name) || c.Output.Dir == "" {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}
