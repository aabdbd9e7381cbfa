package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golaps/internal/laperr"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.Contains(t, validateCmd.Short, "Validate")
	assert.Contains(t, validateCmd.Long, "Checks performed")
	assert.Contains(t, validateCmd.Long, "golaps validate")
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateCommandNoOutputFlags(t *testing.T) {
	flags := validateCmd.Flags()
	assert.Nil(t, flags.Lookup("csv"), "validate command should not have a csv flag")
	assert.Nil(t, flags.Lookup("json"), "validate command should not have a json flag")
}

func TestValidate_ValidInput(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleInput(t, dir)

	output, err := executeCommand(t, "validate", "--input", input, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, output, "Input file: "+input)
	assert.Contains(t, output, "Drivers: 15")
	assert.Contains(t, output, "Input is valid")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "validate must not write artifacts")
}

func TestValidate_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(input, []byte("Driver,Time\n"), 0644))

	_, err := executeCommand(t, "validate", "--input", input, "--log-level", "error")
	require.Error(t, err)
	assert.Equal(t, laperr.ExitEmptyInput, laperr.ExitCode(err))
}

func TestValidate_ReportsErrorOnce(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "negative.csv")
	require.NoError(t, os.WriteFile(input, []byte("Driver,Time\nA,-0.5\n"), 0644))

	output, err := executeCommand(t, "validate", "--input", input, "--log-level", "error")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(output, err.Error()), output)
	assert.NotContains(t, output, "Input is valid")
}

func TestValidate_VerboseListsDrivers(t *testing.T) {
	dir := t.TempDir()
	input := writeSampleInput(t, dir)

	output, err := executeCommand(t, "validate", "--input", input, "--verbose", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "Verstappen")
	assert.Contains(t, output, " laps\n")
}

func TestValidate_SchemaError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "schema.csv")
	require.NoError(t, os.WriteFile(input, []byte("Driver,Lap,Time\nA,1,1.5\n"), 0644))

	_, err := executeCommand(t, "validate", "--input", input, "--log-level", "error")
	require.Error(t, err)
	assert.Equal(t, laperr.ExitSchema, laperr.ExitCode(err))
}
