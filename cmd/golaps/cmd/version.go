package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golaps/internal/config"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the golaps release, the commit and date it was built from, the Go
toolchain, and the artifact defaults compiled into this binary.`,
	Run: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false,
		"Print only the version number")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if versionShort {
		fmt.Fprintln(out, Version)
		return
	}

	defaults := config.DefaultConfig()
	fmt.Fprintf(out, "golaps %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	fmt.Fprintf(out, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  Defaults: input=%s top_n=%d csv=%s json=%s\n",
		defaults.Input.Path, defaults.Ranking.TopN, defaults.Output.CSV, defaults.Output.JSON)
}
