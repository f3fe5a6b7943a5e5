package contracts

import "time"

// RankingRow is one studio's position in a weekly ranking
type RankingRow struct {
	StudioID StudioID `json:"studio_id"`
	Rank     int      `json:"rank"`    // 1-based; tied studios share the lowest rank of their block
	Points   float64  `json:"points"`  // fractional when a tied block splits a points range
	Revenue  int64    `json:"revenue"` // the ranking figure (worldwide gross)
}

// WeeklyRanking is the derived, ordered points table for one scoring week.
// Unique per (season, week index); fully replaced on recompute, never merged.
type WeeklyRanking struct {
	LeagueID   LeagueID     `json:"league_id"`
	SeasonID   SeasonID     `json:"season_id"`
	WeekIndex  int          `json:"week_index"`
	ComputedAt time.Time    `json:"computed_at"`
	Rows       []RankingRow `json:"rows"`
}
