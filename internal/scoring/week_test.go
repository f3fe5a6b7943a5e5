package scoring

import (
	"testing"
	"time"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

func TestWeekWindow(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name        string
		seasonStart time.Time
		weekIndex   int
		loc         *time.Location
		wantStart   time.Time
		wantErr     bool
	}{
		{
			name:        "season starting on the anchor weekday",
			seasonStart: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), // Tuesday
			weekIndex:   0,
			loc:         time.UTC,
			wantStart:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "season starting mid-week snaps forward to Tuesday",
			seasonStart: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), // Thursday
			weekIndex:   0,
			loc:         time.UTC,
			wantStart:   time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "week index advances in 7-day steps",
			seasonStart: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			weekIndex:   3,
			loc:         time.UTC,
			wantStart:   time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "window is anchored in league local time",
			seasonStart: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			weekIndex:   0,
			loc:         la,
			wantStart:   time.Date(2024, 1, 2, 0, 0, 0, 0, la), // Jan 2 00:00 UTC is Jan 1 local (Monday), snaps to Tue Jan 2 local
		},
		{
			name:        "negative week index rejected",
			seasonStart: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			weekIndex:   -1,
			loc:         time.UTC,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeekWindow(tt.seasonStart, tt.weekIndex, tt.loc, DefaultAnchorWeekday)
			if tt.wantErr {
				if err == nil {
					t.Fatal("WeekWindow() expected error, got nil")
				}
				if !contracts.IsKind(err, contracts.KindValidation) {
					t.Errorf("WeekWindow() error kind = %v, want validation", contracts.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("WeekWindow() error = %v", err)
			}

			if !got.WeekStart.Equal(tt.wantStart) {
				t.Errorf("WeekStart = %v, want %v", got.WeekStart, tt.wantStart)
			}
			if got.WeekStart.Weekday() != time.Tuesday {
				t.Errorf("WeekStart weekday = %v, want Tuesday", got.WeekStart.Weekday())
			}

			wantEnd := got.WeekStart.AddDate(0, 0, 7).Add(-time.Millisecond)
			if !got.WeekEnd.Equal(wantEnd) {
				t.Errorf("WeekEnd = %v, want start+7d-1ms %v", got.WeekEnd, wantEnd)
			}
		})
	}
}

func TestWeekWindowContiguity(t *testing.T) {
	seasonStart := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		cur, err := WeekWindow(seasonStart, i, time.UTC, DefaultAnchorWeekday)
		if err != nil {
			t.Fatalf("WeekWindow(%d) error = %v", i, err)
		}
		next, err := WeekWindow(seasonStart, i+1, time.UTC, DefaultAnchorWeekday)
		if err != nil {
			t.Fatalf("WeekWindow(%d) error = %v", i+1, err)
		}

		if want := cur.WeekEnd.Add(time.Millisecond); !next.WeekStart.Equal(want) {
			t.Errorf("week %d start = %v, want previous end + 1ms = %v", i+1, next.WeekStart, want)
		}
	}
}

func TestWeekIndexOf(t *testing.T) {
	seasonStart := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"opening instant", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 0},
		{"mid week zero", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), 0},
		{"first instant of week one", time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), 1},
		{"before the season opens", time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekIndexOf(seasonStart, tt.at, time.UTC, DefaultAnchorWeekday); got != tt.want {
				t.Errorf("WeekIndexOf(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}
