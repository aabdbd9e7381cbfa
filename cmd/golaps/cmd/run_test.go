package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golaps/internal/exporter"
	"github.com/dbsmedya/golaps/internal/laperr"
)

func TestRunCommandStructure(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
	assert.NotEmpty(t, runCmd.Short)
	assert.Contains(t, runCmd.Long, "Example:")
	assert.Contains(t, runCmd.Long, "golaps run")
	assert.NotNil(t, runCmd.RunE)

	flags := runCmd.Flags()
	for _, name := range []string{"csv", "json", "no-summary"} {
		assert.NotNil(t, flags.Lookup(name), "run should have a %s flag", name)
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleInput(t, dir)
	outDir := filepath.Join(dir, "out")

	output, err := executeCommand(t, "run",
		"--input", input,
		"--output-dir", outDir,
		"--log-level", "error",
		"--no-color",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "F1 LAP TIMES ANALYSIS - TOP 3 DRIVERS")
	assert.Contains(t, output, "Drivers analyzed: 15")
	assert.Contains(t, output, "Results written to")

	csvRecords, err := exporter.ReadCSV(filepath.Join(outDir, "top_3_drivers.csv"))
	require.NoError(t, err)
	doc, err := exporter.ReadJSON(filepath.Join(outDir, "top_3_drivers.json"))
	require.NoError(t, err)

	require.Len(t, csvRecords, 3)
	require.Len(t, doc.TopDrivers, 3)
	for i := range csvRecords {
		assert.Equal(t, csvRecords[i].Driver, doc.TopDrivers[i].Driver)
		assert.Equal(t, i+1, doc.TopDrivers[i].Rank)
	}
	assert.Equal(t, 15, doc.TotalDriversAnalyzed)
}

func TestRun_CustomNamesAndTopN(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleInput(t, dir)

	output, err := executeCommand(t, "run",
		"-i", input,
		"-o", dir,
		"-n", "5",
		"--csv", "five.csv",
		"--json", "five.json",
		"--no-summary",
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.NotContains(t, output, "F1 LAP TIMES ANALYSIS")

	doc, err := exporter.ReadJSON(filepath.Join(dir, "five.json"))
	require.NoError(t, err)
	assert.Len(t, doc.TopDrivers, 5)

	_, err = os.Stat(filepath.Join(dir, "five.csv"))
	assert.NoError(t, err)
}

func TestRun_InvalidInputExitCode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.csv")

	var b strings.Builder
	b.WriteString("Driver,Time\n")
	for _, d := range []string{"A", "B", "C"} {
		b.WriteString(d + ",1.5\n" + d + ",1.6\n" + d + ",1.7\n")
	}
	require.NoError(t, os.WriteFile(input, []byte(b.String()), 0644))

	_, err := executeCommand(t, "run", "--input", input, "--output-dir", dir, "--log-level", "error")
	require.Error(t, err)
	assert.True(t, errors.Is(err, laperr.ErrValidation))
	assert.Equal(t, laperr.ExitValidation, laperr.ExitCode(err))

	_, statErr := os.Stat(filepath.Join(dir, "top_3_drivers.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingInputExitCode(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, "run",
		"--input", filepath.Join(dir, "absent.csv"),
		"--output-dir", dir,
		"--log-level", "error",
	)
	require.Error(t, err)
	assert.Equal(t, laperr.ExitFileNotFound, laperr.ExitCode(err))
}

func TestRun_InvalidConfigIsGeneric(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleInput(t, dir)

	_, err := executeCommand(t, "run",
		"--input", input,
		"--output-dir", dir,
		"--csv", "same.out",
		"--json", "same.out",
		"--log-level", "error",
	)
	require.Error(t, err)
	assert.Equal(t, laperr.ExitGeneric, laperr.ExitCode(err))
}
