package contracts

import "time"

// AwardResult is the outcome being credited, nomination or win
type AwardResult string

const (
	AwardNomination AwardResult = "nom"
	AwardWin        AwardResult = "win"
)

// Valid reports whether the result is one of the known outcomes
func (r AwardResult) Valid() bool {
	return r == AwardNomination || r == AwardWin
}

// AwardBonus is supplemental points granted to the studio owning a movie
// when it is nominated for or wins an award category. Unique per
// (season, studio, movie, category, result): the same movie may be credited
// once as a nomination and once later as a win, but never twice for either.
// Award points are kept as an independent ledger and are not folded into
// WeeklyRanking points.
type AwardBonus struct {
	ID          BonusID     `json:"id"`
	LeagueID    LeagueID    `json:"league_id"`
	SeasonID    SeasonID    `json:"season_id"`
	StudioID    StudioID    `json:"studio_id"`
	MovieID     MovieID     `json:"movie_id"`
	CategoryKey string      `json:"category_key"`
	Result      AwardResult `json:"result"`
	Points      int         `json:"points"`
	AwardedAt   time.Time   `json:"awarded_at"`
}
