// Package ranker orders driver statistics and assigns ranks.
package ranker

import (
	"fmt"
	"sort"

	"github.com/dbsmedya/golaps/internal/types"
)

// Less reports whether a ranks ahead of b: lower average first, then lower
// fastest lap, then driver name. Distinct drivers never compare equal.
func Less(a, b types.DriverStats) bool {
	if a.AverageTime != b.AverageTime {
		return a.AverageTime < b.AverageTime
	}
	if a.FastestTime != b.FastestTime {
		return a.FastestTime < b.FastestTime
	}
	return a.Driver < b.Driver
}

// Rank returns at most n drivers in ranking order with ranks 1..k.
// stats is not modified.
func Rank(stats []types.DriverStats, n int) ([]types.RankedDriver, error) {
	if n < 1 {
		return nil, fmt.Errorf("top-n must be at least 1, got %d", n)
	}

	sorted := make([]types.DriverStats, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	ranked := make([]types.RankedDriver, n)
	for i := 0; i < n; i++ {
		ranked[i] = types.RankedDriver{
			DriverStats: sorted[i],
			Rank:        i + 1,
		}
	}
	return ranked, nil
}
