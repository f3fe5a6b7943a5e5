package scoring

import (
	"time"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// DefaultAnchorWeekday is the weekday a scoring week opens on. Box-office
// weeks run Tuesday through Monday, matching the acquisition window.
const DefaultAnchorWeekday = time.Tuesday

// Window is one scoring week, inclusive on both ends:
// [WeekStart, WeekEnd] with WeekEnd = WeekStart + 7 days - 1ms.
type Window struct {
	WeekIndex int       `json:"week_index"`
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
}

// WeekWindow computes the scoring window for a zero-based week index.
// The season start date is interpreted as a calendar day in loc, snapped
// forward to the anchor weekday, and advanced by weekIndex*7 days. Pure
// function, no I/O.
func WeekWindow(seasonStart time.Time, weekIndex int, loc *time.Location, anchor time.Weekday) (Window, error) {
	if weekIndex < 0 {
		return Window{}, contracts.Invalid("week index must be a non-negative integer", "weekIndex")
	}

	base := dayStart(seasonStart.In(loc))
	for base.Weekday() != anchor {
		base = base.AddDate(0, 0, 1)
	}

	weekStart := base.AddDate(0, 0, 7*weekIndex)
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)

	return Window{
		WeekIndex: weekIndex,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	}, nil
}

// WeekIndexOf returns the zero-based week index containing t, or -1 when t
// falls before week zero opens. Used by the scheduler to find the week that
// just closed.
func WeekIndexOf(seasonStart time.Time, t time.Time, loc *time.Location, anchor time.Weekday) int {
	zero, err := WeekWindow(seasonStart, 0, loc, anchor)
	if err != nil {
		return -1
	}
	if t.Before(zero.WeekStart) {
		return -1
	}
	return int(t.Sub(zero.WeekStart) / (7 * 24 * time.Hour))
}

// dayStart normalizes t to midnight of its calendar day
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
