package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (GOLAPS_INPUT_PATH, ...).
const EnvPrefix = "GOLAPS"

// Load reads configuration from the specified file path.
// An empty path skips the file and yields defaults plus environment overrides.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		// Read the config file
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// newViper returns a Viper instance that knows every config key, so that
// AutomaticEnv overrides are visible to Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("input.path", d.Input.Path)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.csv", d.Output.CSV)
	v.SetDefault("output.json", d.Output.JSON)
	v.SetDefault("ranking.top_n", d.Ranking.TopN)
	v.SetDefault("validation.min_drivers", d.Validation.MinDrivers)
	v.SetDefault("validation.min_laps_per_driver", d.Validation.MinLapsPerDriver)
	v.SetDefault("verification.method", d.Verification.Method)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)

	return v
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns in path settings with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Input.Path = expandEnvVar(cfg.Input.Path)

	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Output.CSV = expandEnvVar(cfg.Output.CSV)
	cfg.Output.JSON = expandEnvVar(cfg.Output.JSON)

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, inputPath, outputDir string, topN int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if inputPath != "" {
		c.Input.Path = inputPath
	}
	if outputDir != "" {
		c.Output.Dir = outputDir
	}
	if topN > 0 {
		c.Ranking.TopN = topN
	}
}

// ApplyOutputOverrides replaces the artifact file names when set.
func (c *Config) ApplyOutputOverrides(csvName, jsonName string) {
	if csvName != "" {
		c.Output.CSV = csvName
	}
	if jsonName != "" {
		c.Output.JSON = jsonName
	}
}
