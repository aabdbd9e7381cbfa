package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golaps/internal/sampledata"
)

// resetFlags restores every package-level flag variable; cobra only assigns
// flags that appear on the command line.
func resetFlags() {
	cfgFile = ""
	logLevel = ""
	logFormat = ""
	inputPath = ""
	outputDir = ""
	topN = 0
	noColor = false

	runCSV = ""
	runJSON = ""
	runNoSummary = false
	validateVerbose = false
	versionShort = false

	defaults := sampledata.DefaultOptions()
	generateOutput = ""
	generateSeed = 0
	generateVariance = defaults.Variance
	generateMinLaps = defaults.MinLaps
	generateMaxLaps = defaults.MaxLaps
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSampleInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "f1_lap_times.csv")
	opts := sampledata.DefaultOptions()
	opts.Seed = 2024
	_, err := sampledata.WriteFile(path, opts)
	require.NoError(t, err)
	return path
}
