package contracts

import "time"

// MovieOwnership assigns a movie to a studio for a season.
// At most one row ever exists per (season, movie): once a movie has been
// owned, even if later retired, it cannot be re-acquired that season.
// Rows are never deleted so historical attribution survives retirement.
type MovieOwnership struct {
	ID            OwnershipID `json:"id"`
	LeagueID      LeagueID    `json:"league_id"`
	SeasonID      SeasonID    `json:"season_id"`
	StudioID      StudioID    `json:"studio_id"`
	MovieID       MovieID     `json:"movie_id"`
	PurchasePrice int64       `json:"purchase_price"` // whole dollars
	AcquiredAt    time.Time   `json:"acquired_at"`
	RetiredAt     *time.Time  `json:"retired_at,omitempty"`
	RefundApplied bool        `json:"refund_applied"`
}

// Active reports whether the ownership has not been retired
func (o *MovieOwnership) Active() bool {
	return o.RetiredAt == nil
}

// OverlapsWeek reports whether the ownership was active during any part of
// [weekStart, weekEnd]. This is the attribution policy used by scoring:
// revenue belongs to whoever held the movie during the scoring week, not to
// whoever happens to hold it when the week is computed.
func (o *MovieOwnership) OverlapsWeek(weekStart, weekEnd time.Time) bool {
	if o.AcquiredAt.After(weekEnd) {
		return false
	}
	if o.RetiredAt != nil && o.RetiredAt.Before(weekStart) {
		return false
	}
	return true
}

// Movie is a catalog entry. The catalog is shared across leagues and is
// populated by the revenue ingestion side.
type Movie struct {
	ID          MovieID   `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"` // provider chart slug
	ReleaseDate time.Time `json:"release_date"`
}
