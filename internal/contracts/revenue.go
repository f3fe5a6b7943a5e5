package contracts

import "time"

// MovieWeeklyRevenue is one week of real-world box office for one movie.
// One row per (movie, week start); populated by the ingestion side and
// read-only from scoring.
type MovieWeeklyRevenue struct {
	MovieID        MovieID   `json:"movie_id"`
	WeekStart      time.Time `json:"week_start"`
	WeekEnd        time.Time `json:"week_end"`
	DomesticGross  int64     `json:"domestic_gross"`  // whole dollars
	WorldwideGross int64     `json:"worldwide_gross"` // whole dollars
}

// StudioWeeklyRevenue is the derived per-studio total for one scoring week.
// Unique per (season, week index, studio); fully overwritten on recompute.
type StudioWeeklyRevenue struct {
	LeagueID            LeagueID  `json:"league_id"`
	SeasonID            SeasonID  `json:"season_id"`
	StudioID            StudioID  `json:"studio_id"`
	WeekIndex           int       `json:"week_index"`
	WeekStart           time.Time `json:"week_start"`
	WeekEnd             time.Time `json:"week_end"`
	TotalDomesticGross  int64     `json:"total_domestic_gross"`
	TotalWorldwideGross int64     `json:"total_worldwide_gross"`
}
