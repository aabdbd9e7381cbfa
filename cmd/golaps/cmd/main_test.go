package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit on error, so only its presence is checked here.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	resetFlags()

	// String flags default to empty so the config file (or defaults) wins
	assert.Equal(t, "", cfgFile)
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, "", inputPath)
	assert.Equal(t, "", outputDir)

	assert.Equal(t, 0, topN)
	assert.False(t, noColor)
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"run", "validate", "show", "generate", "version"}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "%s command should be added to root command", name)
	}
}
