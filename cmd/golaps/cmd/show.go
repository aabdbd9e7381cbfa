package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golaps/internal/exporter"
)

var showCmd = &cobra.Command{
	Use:   "show [results.json]",
	Short: "Print the summary table of a JSON artifact",
	Long: `Show reads a JSON artifact written by run and prints its summary table.
Without an argument the configured JSON artifact path is used.

Example:
  golaps show out/top_3_drivers.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, path = cfg.OutputPaths()
	}

	doc, err := exporter.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	return summaryTable().Render(cmd.OutOrStdout(), doc.Result())
}
