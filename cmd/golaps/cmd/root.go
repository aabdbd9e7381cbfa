package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/golaps/internal/config"
	"github.com/dbsmedya/golaps/internal/exporter"
	"github.com/dbsmedya/golaps/internal/laperr"
)

// Version information (set via ldflags at build time)
var (
	Version   = "0.0.1-dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	inputPath string
	outputDir string
	topN      int
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "golaps",
	Short: "F1 lap times top-N analyzer",
	Long: `golaps reads a file of per-lap timing records, ranks drivers by their
average lap time and writes the top N drivers as CSV and JSON.

Pipeline:
  1. Load and validate the Driver,Time input (whole run aborts on a bad row)
  2. Aggregate average, fastest and lap count per driver
  3. Rank by average, then fastest lap, then name
  4. Export CSV and JSON artifacts and print a summary`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command and exits with the status mapped from the error kind.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(laperr.ExitCode(err))
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Pipeline overrides
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "",
		"Override input lap times file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "",
		"Override directory the artifacts are written to")
	rootCmd.PersistentFlags().IntVarP(&topN, "top-n", "n", 0,
		"Override number of drivers to rank (0 keeps the configured value)")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured console output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	InputPath string
	OutputDir string
	TopN      int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		InputPath: inputPath,
		OutputDir: outputDir,
		TopN:      topN,
	}
}

// loadConfig loads the config file (if any) and applies the persistent flag overrides.
// The result is not validated; commands may apply further overrides first.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	if overrides.TopN < 0 {
		return nil, fmt.Errorf("--top-n must be >= 1, got %d", overrides.TopN)
	}
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.InputPath, overrides.OutputDir, overrides.TopN)

	return cfg, nil
}

// summaryTable returns the console renderer honouring --no-color and terminal support.
func summaryTable() exporter.Table {
	return exporter.Table{Color: !noColor && color.SupportColor()}
}
