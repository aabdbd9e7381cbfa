// Package types contains the lap timing model shared by the pipeline stages to avoid import cycles.
package types

// LapRecord is one validated lap: a driver and the lap duration in seconds.
type LapRecord struct {
	Driver  string
	LapTime float64
	Line    int // Source line in the input file
}

// DriverStats holds the per-driver aggregate over all valid laps.
type DriverStats struct {
	Driver      string
	AverageTime float64
	FastestTime float64
	LapCount    int
}

// RankedDriver is a DriverStats entry with its 1-based position in the ranking.
type RankedDriver struct {
	DriverStats
	Rank int
}

// PipelineResult is the externally visible output of one run.
type PipelineResult struct {
	TopDrivers           []RankedDriver
	TotalDriversAnalyzed int
	TotalLapsAnalyzed    int
}

// NewPipelineResult builds a result that owns its own copy of top.
func NewPipelineResult(top []RankedDriver, totalDrivers, totalLaps int) PipelineResult {
	owned := make([]RankedDriver, len(top))
	copy(owned, top)
	return PipelineResult{
		TopDrivers:           owned,
		TotalDriversAnalyzed: totalDrivers,
		TotalLapsAnalyzed:    totalLaps,
	}
}

// Drivers returns the names of the top drivers in rank order.
func (r PipelineResult) Drivers() []string {
	names := make([]string, len(r.TopDrivers))
	for i, d := range r.TopDrivers {
		names[i] = d.Driver
	}
	return names
}
