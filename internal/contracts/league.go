package contracts

import "time"

// PointsSchemeKind selects how ranks are converted to points
type PointsSchemeKind string

const (
	// PointsSchemeTable resolves points from a fixed rank-indexed table
	PointsSchemeTable PointsSchemeKind = "table"
	// PointsSchemeLinear resolves points from the linear curve 2N - 2(rank-1)
	PointsSchemeLinear PointsSchemeKind = "linear"
)

// DefaultPointsTable is the fixed table used when a league has no custom one.
// Rank positions beyond the table length score zero.
var DefaultPointsTable = []int{10, 8, 6, 5, 4, 3, 2, 1}

// PointsScheme is a league's rank-to-points policy
type PointsScheme struct {
	Kind  PointsSchemeKind `json:"kind"`
	Table []int            `json:"table,omitempty"` // used when Kind == "table"
}

// EffectiveTable returns the custom table or the default one
func (p PointsScheme) EffectiveTable() []int {
	if len(p.Table) > 0 {
		return p.Table
	}
	return DefaultPointsTable
}

// AwardCategory configures one bonus category for a league
type AwardCategory struct {
	Key              string `json:"key"`
	Enabled          bool   `json:"enabled"`
	NominationPoints int    `json:"nomination_points"`
	WinPoints        int    `json:"win_points"`
}

// League is the container for a competition among studios.
// Scoring and award configuration live here and are passed explicitly into
// the ranking and award components; nothing reads them from global state.
type League struct {
	ID              LeagueID        `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Timezone        string          `json:"timezone"` // IANA name, e.g. "America/Los_Angeles"
	PointsScheme    PointsScheme    `json:"points_scheme"`
	BudgetCap       int64           `json:"budget_cap"` // whole dollars
	AwardCategories []AwardCategory `json:"award_categories"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Location resolves the league's IANA timezone
func (l *League) Location() (*time.Location, error) {
	return time.LoadLocation(l.Timezone)
}

// AwardCategoryByKey looks up an award category config by key
func (l *League) AwardCategoryByKey(key string) (AwardCategory, bool) {
	for _, c := range l.AwardCategories {
		if c.Key == key {
			return c, true
		}
	}
	return AwardCategory{}, false
}

// Season is a time-boxed run within a league, divided into scoring weeks.
// StartDate anchors week zero; it is interpreted as a calendar day in the
// league's timezone.
type Season struct {
	ID        SeasonID  `json:"id"`
	LeagueID  LeagueID  `json:"league_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	WeekCount int       `json:"week_count"`
	Active    bool      `json:"active"`
}

// Studio is a user-controlled team owning movies within a league.
// One studio per user per league; enforced by a uniqueness constraint.
type Studio struct {
	ID          StudioID  `json:"id"`
	LeagueID    LeagueID  `json:"league_id"`
	OwnerUserID UserID    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}
