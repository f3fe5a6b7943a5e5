package scoring

import (
	"sort"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// BuildRanking converts per-studio week totals into the ordered points
// table. Studios are sorted descending by worldwide gross; studios with
// exactly equal gross form a tied block, share the lowest rank in the
// block, and each receive the arithmetic mean of the points across every
// rank position the block spans. An empty input yields empty rows.
func BuildRanking(totals []contracts.StudioWeeklyRevenue, scheme contracts.PointsScheme) []contracts.RankingRow {
	rows := make([]contracts.RankingRow, 0, len(totals))
	if len(totals) == 0 {
		return rows
	}

	sorted := make([]contracts.StudioWeeklyRevenue, len(totals))
	copy(sorted, totals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalWorldwideGross != sorted[j].TotalWorldwideGross {
			return sorted[i].TotalWorldwideGross > sorted[j].TotalWorldwideGross
		}
		// Stable order inside tied blocks so recomputes are byte-identical
		return sorted[i].StudioID < sorted[j].StudioID
	})

	n := len(sorted)
	for start := 0; start < n; {
		end := start
		for end+1 < n && sorted[end+1].TotalWorldwideGross == sorted[start].TotalWorldwideGross {
			end++
		}

		// The whole block takes the block's lowest (best) rank and splits
		// the points of the positions it occupies.
		rank := start + 1
		var sum float64
		for pos := start; pos <= end; pos++ {
			sum += pointFor(scheme, pos+1, n)
		}
		points := sum / float64(end-start+1)

		for pos := start; pos <= end; pos++ {
			rows = append(rows, contracts.RankingRow{
				StudioID: sorted[pos].StudioID,
				Rank:     rank,
				Points:   points,
				Revenue:  sorted[pos].TotalWorldwideGross,
			})
		}

		start = end + 1
	}

	return rows
}

// pointFor resolves points for a 1-based rank among n ranked studios
func pointFor(scheme contracts.PointsScheme, rank, n int) float64 {
	switch scheme.Kind {
	case contracts.PointsSchemeLinear:
		// Linear curve: 2N down to 2 in steps of 2
		return float64(2*n - 2*(rank-1))
	default:
		table := scheme.EffectiveTable()
		if rank <= len(table) {
			return float64(table[rank-1])
		}
		return 0
	}
}
