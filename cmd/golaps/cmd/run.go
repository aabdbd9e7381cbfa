package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golaps/internal/logger"
	"github.com/dbsmedya/golaps/internal/pipeline"
)

var (
	runCSV       string
	runJSON      string
	runNoSummary bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rank drivers and write the CSV and JSON artifacts",
	Long: `Run executes the full pipeline against the input file.

The run follows these steps:
  1. Load and validate every row (any invalid row aborts before output)
  2. Aggregate laps per driver
  3. Rank the top N drivers
  4. Write the CSV and JSON artifacts, then verify them
  5. Print the summary table

Example:
  golaps run --input f1_lap_times.csv --output-dir out --top-n 3`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runCSV, "csv", "",
		"CSV artifact file name (relative to --output-dir unless absolute)")
	runCmd.Flags().StringVar(&runJSON, "json", "",
		"JSON artifact file name (relative to --output-dir unless absolute)")
	runCmd.Flags().BoolVar(&runNoSummary, "no-summary", false,
		"Do not print the summary table")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyOutputOverrides(runCSV, runJSON)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Infow("Starting run", "config", GetConfigFile())

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			log.Warn("Received shutdown signal - stopping after current stage...")
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := p.Run(ctx)
	if err != nil && errors.Is(err, context.Canceled) {
		log.Warn("Run cancelled by user")
		return err
	}

	out := cmd.OutOrStdout()
	if result != nil && result.Report != nil && !runNoSummary {
		if rerr := summaryTable().Render(out, result.Output); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Results written to %s and %s (%s)\n",
		result.Report.CSV.Path, result.Report.JSON.Path, result.Duration)
	return nil
}
