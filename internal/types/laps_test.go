package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPipelineResultCopiesTopDrivers(t *testing.T) {
	top := []RankedDriver{
		{DriverStats: DriverStats{Driver: "Verstappen", AverageTime: 4.5, FastestTime: 4.3, LapCount: 3}, Rank: 1},
		{DriverStats: DriverStats{Driver: "Hamilton", AverageTime: 4.6, FastestTime: 4.4, LapCount: 4}, Rank: 2},
	}

	result := NewPipelineResult(top, 12, 50)
	top[0].Driver = "changed"

	assert.Equal(t, "Verstappen", result.TopDrivers[0].Driver)
	assert.Equal(t, 12, result.TotalDriversAnalyzed)
	assert.Equal(t, 50, result.TotalLapsAnalyzed)
	assert.Equal(t, []string{"Verstappen", "Hamilton"}, result.Drivers())
}

func TestPipelineResultEmpty(t *testing.T) {
	result := NewPipelineResult(nil, 0, 0)
	assert.NotNil(t, result.TopDrivers)
	assert.Empty(t, result.Drivers())
}
