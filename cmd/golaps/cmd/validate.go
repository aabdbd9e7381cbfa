package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golaps/internal/aggregator"
	"github.com/dbsmedya/golaps/internal/logger"
	"github.com/dbsmedya/golaps/internal/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and input without writing artifacts",
	Long: `Validate checks the configuration and loads the input file with the
same rules as run, but writes nothing.

Checks performed:
  - Configuration fields and output paths
  - Header contains exactly the Driver and Time columns
  - Every driver name is non-empty and every lap time is a positive number
  - Minimum distinct drivers and minimum laps per driver

Example:
  golaps validate --input f1_lap_times.csv`,
	RunE: runValidate,
}

var validateVerbose bool

func init() {
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false,
		"List every driver with its lap count, in input order")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n=== Input Validation ===\n")
	fmt.Fprintf(out, "Input file: %s\n", cfg.Input.Path)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	records, err := p.Extract(ctx)
	if err != nil {
		return err
	}

	stats, err := aggregator.Aggregate(records)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Laps: %d\n", stats.TotalLaps())
	fmt.Fprintf(out, "Drivers: %d\n", stats.Len())
	if validateVerbose {
		for _, driver := range stats.Drivers() {
			s, _ := stats.Get(driver)
			fmt.Fprintf(out, "  %-20s %d laps\n", driver, s.LapCount)
		}
	}
	fmt.Fprintln(out, "✅ Input is valid")
	return nil
}
