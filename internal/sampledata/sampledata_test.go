package sampledata

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golaps/internal/aggregator"
	"github.com/dbsmedya/golaps/internal/loader"
)

func seeded(seed int64) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	return opts
}

func TestGenerate_Bounds(t *testing.T) {
	records, err := Generate(seeded(42))
	require.NoError(t, err)

	base := make(map[string]float64)
	for _, d := range DefaultDrivers {
		base[d.Name] = d.BaseTime
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Driver]++
		assert.GreaterOrEqual(t, r.LapTime, MinLapTime)
		assert.LessOrEqual(t, math.Abs(r.LapTime-base[r.Driver]), 0.5+0.005+1e-9, "%s lap %v", r.Driver, r.LapTime)
		assert.Equal(t, r.LapTime, math.Round(r.LapTime*100)/100)
	}

	assert.Len(t, counts, len(DefaultDrivers))
	for driver, n := range counts {
		if n < 3 || n > 8 {
			t.Errorf("driver %s has %d laps, want 3..8", driver, n)
		}
	}
}

func TestGenerate_Seeded(t *testing.T) {
	a, err := Generate(seeded(7))
	require.NoError(t, err)
	b, err := Generate(seeded(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(seeded(8))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_ClampsToMinimum(t *testing.T) {
	opts := seeded(1)
	opts.Drivers = []Driver{{"Backmarker", 0.2}}
	opts.Variance = 0.1

	records, err := Generate(opts)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, MinLapTime, r.LapTime)
	}
}

func TestGenerate_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"negative variance", func(o *Options) { o.Variance = -1 }},
		{"zero min laps", func(o *Options) { o.MinLaps = 0 }},
		{"max below min", func(o *Options) { o.MaxLaps = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := seeded(1)
			tt.mutate(&opts)
			_, err := Generate(opts)
			assert.Error(t, err)
		})
	}
}

func TestWrite_LoadsBack(t *testing.T) {
	records, err := Generate(seeded(3))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	loaded, err := loader.Read(&buf, loader.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestWriteFile_PassesPipelineRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "f1_lap_times.csv")

	records, err := WriteFile(path, seeded(99))
	require.NoError(t, err)

	loaded, err := loader.Load(path, loader.DefaultRules())
	require.NoError(t, err)
	assert.Len(t, loaded, len(records))

	stats, err := aggregator.Aggregate(loaded)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultDrivers), stats.Len())
	assert.Equal(t, len(records), stats.TotalLaps())
}
