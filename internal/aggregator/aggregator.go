// Package aggregator groups validated laps by driver and computes per-driver statistics.
package aggregator

import (
	"errors"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/golaps/internal/types"
)

// ErrNoRecords is returned when Aggregate is called with no laps.
var ErrNoRecords = errors.New("no lap records to aggregate")

// Stats maps driver identity to DriverStats, in the order drivers first appear in the input.
type Stats struct {
	drivers   *orderedmap.OrderedMap[string, types.DriverStats]
	totalLaps int
}

// Aggregate computes average, fastest and lap count for every driver in records.
// Drivers are grouped by exact name; the loader has already trimmed whitespace.
// Each driver's laps are summed in ascending order so the average does not
// depend on the order rows appear in the input.
func Aggregate(records []types.LapRecord) (*Stats, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	groups := orderedmap.NewOrderedMap[string, []float64]()
	for _, rec := range records {
		laps, _ := groups.Get(rec.Driver)
		groups.Set(rec.Driver, append(laps, rec.LapTime))
	}

	stats := &Stats{
		drivers:   orderedmap.NewOrderedMap[string, types.DriverStats](),
		totalLaps: len(records),
	}
	for el := groups.Front(); el != nil; el = el.Next() {
		stats.drivers.Set(el.Key, summarize(el.Key, el.Value))
	}

	return stats, nil
}

func summarize(driver string, laps []float64) types.DriverStats {
	sort.Float64s(laps)

	var sum float64
	for _, lap := range laps {
		sum += lap
	}
	return types.DriverStats{
		Driver:      driver,
		AverageTime: sum / float64(len(laps)),
		FastestTime: laps[0],
		LapCount:    len(laps),
	}
}

// Len returns the number of distinct drivers.
func (s *Stats) Len() int {
	return s.drivers.Len()
}

// TotalLaps returns the number of laps aggregated across all drivers.
func (s *Stats) TotalLaps() int {
	return s.totalLaps
}

// Get returns the statistics for driver.
func (s *Stats) Get(driver string) (types.DriverStats, bool) {
	return s.drivers.Get(driver)
}

// Drivers returns driver names in first-seen order.
func (s *Stats) Drivers() []string {
	return s.drivers.Keys()
}

// Values returns the statistics of every driver in first-seen order.
func (s *Stats) Values() []types.DriverStats {
	values := make([]types.DriverStats, 0, s.drivers.Len())
	for el := s.drivers.Front(); el != nil; el = el.Next() {
		values = append(values, el.Value)
	}
	return values
}
