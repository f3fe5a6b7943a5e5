package scoring

import (
	"testing"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

func totalsFor(gross ...int64) []contracts.StudioWeeklyRevenue {
	rows := make([]contracts.StudioWeeklyRevenue, len(gross))
	for i, g := range gross {
		rows[i] = contracts.StudioWeeklyRevenue{
			StudioID:            contracts.StudioID(i + 1),
			TotalWorldwideGross: g,
		}
	}
	return rows
}

func TestBuildRanking(t *testing.T) {
	table := contracts.PointsScheme{Kind: contracts.PointsSchemeTable}

	tests := []struct {
		name       string
		totals     []contracts.StudioWeeklyRevenue
		scheme     contracts.PointsScheme
		wantRanks  []int
		wantPoints []float64
	}{
		{
			name:       "no ties uses table positions directly",
			totals:     totalsFor(300, 200, 100),
			scheme:     table,
			wantRanks:  []int{1, 2, 3},
			wantPoints: []float64{10, 8, 6},
		},
		{
			name:       "tied block shares lowest rank and mean points",
			totals:     totalsFor(100, 100, 50),
			scheme:     table,
			wantRanks:  []int{1, 1, 3},
			wantPoints: []float64{9, 9, 6}, // (10+8)/2 for the block, rank 3 unaffected
		},
		{
			name:       "three-way tie below a leader",
			totals:     totalsFor(500, 200, 200, 200),
			scheme:     table,
			wantRanks:  []int{1, 2, 2, 2},
			wantPoints: []float64{10, 6.333333333333333, 6.333333333333333, 6.333333333333333}, // (8+6+5)/3
		},
		{
			name:       "ranks beyond the table score zero",
			totals:     totalsFor(900, 800, 700, 600, 500, 400, 300, 200, 100),
			scheme:     table,
			wantRanks:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
			wantPoints: []float64{10, 8, 6, 5, 4, 3, 2, 1, 0},
		},
		{
			name:       "linear scheme runs 2N down in steps of 2",
			totals:     totalsFor(300, 200, 100),
			scheme:     contracts.PointsScheme{Kind: contracts.PointsSchemeLinear},
			wantRanks:  []int{1, 2, 3},
			wantPoints: []float64{6, 4, 2},
		},
		{
			name:   "empty input yields empty rows",
			totals: nil,
			scheme: table,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRanking(tt.totals, tt.scheme)
			if len(rows) != len(tt.wantRanks) {
				t.Fatalf("BuildRanking() returned %d rows, want %d", len(rows), len(tt.wantRanks))
			}
			for i, row := range rows {
				if row.Rank != tt.wantRanks[i] {
					t.Errorf("row %d rank = %d, want %d", i, row.Rank, tt.wantRanks[i])
				}
				if diff := row.Points - tt.wantPoints[i]; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("row %d points = %v, want %v", i, row.Points, tt.wantPoints[i])
				}
			}
		})
	}
}

// With the linear scheme and no ties the points total is fixed at
// N*(N+1): the sum 2N + 2N-2 + ... + 2.
func TestBuildRankingLinearPointsSum(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8, 20} {
		gross := make([]int64, n)
		for i := range gross {
			gross[i] = int64((n - i) * 1000)
		}

		rows := BuildRanking(totalsFor(gross...), contracts.PointsScheme{Kind: contracts.PointsSchemeLinear})

		var sum float64
		for _, row := range rows {
			sum += row.Points
		}
		if want := float64(n * (n + 1)); sum != want {
			t.Errorf("n=%d points sum = %v, want %v", n, sum, want)
		}
	}
}

// A tie must not change the total points handed out compared to the
// untied ordering of the same positions.
func TestBuildRankingTiePreservesPointsSum(t *testing.T) {
	scheme := contracts.PointsScheme{Kind: contracts.PointsSchemeTable}

	tied := BuildRanking(totalsFor(100, 100, 100, 50), scheme)
	untied := BuildRanking(totalsFor(400, 300, 200, 50), scheme)

	var tiedSum, untiedSum float64
	for _, r := range tied {
		tiedSum += r.Points
	}
	for _, r := range untied {
		untiedSum += r.Points
	}
	if tiedSum != untiedSum {
		t.Errorf("tied points sum = %v, untied = %v; ties must redistribute, not create points", tiedSum, untiedSum)
	}
}

func TestBuildRankingDeterministicOrder(t *testing.T) {
	// Equal gross, shuffled input: output order and assignment must be
	// identical run to run so recomputes store identical snapshots.
	in := []contracts.StudioWeeklyRevenue{
		{StudioID: 3, TotalWorldwideGross: 100},
		{StudioID: 1, TotalWorldwideGross: 100},
		{StudioID: 2, TotalWorldwideGross: 100},
	}

	rows := BuildRanking(in, contracts.PointsScheme{Kind: contracts.PointsSchemeTable})
	for i, want := range []contracts.StudioID{1, 2, 3} {
		if rows[i].StudioID != want {
			t.Errorf("row %d studio = %d, want %d", i, rows[i].StudioID, want)
		}
	}
}
