package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golaps/internal/exporter"
	"github.com/dbsmedya/golaps/internal/types"
)

func TestShowCommandStructure(t *testing.T) {
	assert.Equal(t, "show [results.json]", showCmd.Use)
	assert.NotEmpty(t, showCmd.Short)
	assert.NotNil(t, showCmd.RunE)
}

func TestShow_RendersArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "top.json")

	result := types.NewPipelineResult([]types.RankedDriver{
		{DriverStats: types.DriverStats{Driver: "Verstappen", AverageTime: 4.5021, FastestTime: 4.11, LapCount: 5}, Rank: 1},
		{DriverStats: types.DriverStats{Driver: "Leclerc", AverageTime: 4.58, FastestTime: 4.2, LapCount: 4}, Rank: 2},
	}, 15, 80)
	require.NoError(t, exporter.WriteJSON(path, result))

	output, err := executeCommand(t, "show", path, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, output, "TOP 2 DRIVERS")
	assert.Contains(t, output, "Verstappen")
	assert.Contains(t, output, "4.502")
	assert.Contains(t, output, "Drivers analyzed: 15   Laps analyzed: 80")
}

func TestShow_DefaultPathFromConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleInput(t, dir)

	_, err := executeCommand(t, "run", "-i", input, "-o", dir, "--no-summary", "--log-level", "error")
	require.NoError(t, err)

	output, err := executeCommand(t, "show", "-o", dir, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, output, "TOP 3 DRIVERS")
}

func TestShow_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "show", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestShow_TooManyArgs(t *testing.T) {
	_, err := executeCommand(t, "show", "a.json", "b.json")
	assert.Error(t, err)
}
