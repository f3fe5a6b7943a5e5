package roster

import (
	"testing"
	"time"
)

func TestCheckAcquisitionWindow(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name    string
		now     time.Time
		loc     *time.Location
		allowed bool
	}{
		{
			name:    "Wednesday morning is open",
			now:     time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			allowed: true,
		},
		{
			name:    "Saturday morning is locked",
			now:     time.Date(2024, 1, 13, 10, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			allowed: false,
		},
		{
			name:    "Tuesday at midnight is open",
			now:     time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			allowed: true,
		},
		{
			name:    "Thursday 19:59 is open",
			now:     time.Date(2024, 1, 11, 19, 59, 0, 0, time.UTC),
			loc:     time.UTC,
			allowed: true,
		},
		{
			name:    "Thursday 20:00 is locked",
			now:     time.Date(2024, 1, 11, 20, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			allowed: false,
		},
		{
			name:    "Monday is locked",
			now:     time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			allowed: false,
		},
		{
			// 02:00 UTC Friday is still Thursday 18:00 in Los Angeles
			name:    "league timezone decides, not UTC",
			now:     time.Date(2024, 1, 12, 2, 0, 0, 0, time.UTC),
			loc:     la,
			allowed: true,
		},
		{
			// Thursday 18:00 UTC is already Friday 03:00 in Sydney
			name:    "east-of-UTC league locks earlier",
			now:     time.Date(2024, 1, 11, 18, 0, 0, 0, time.UTC),
			loc:     mustLocation(t, "Australia/Sydney"),
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckAcquisitionWindow(tt.now, tt.loc)
			if d.Allowed != tt.allowed {
				t.Errorf("CheckAcquisitionWindow(%v in %v) allowed = %v, want %v (reason: %q)",
					tt.now, tt.loc, d.Allowed, tt.allowed, d.Reason)
			}
			if !d.Allowed && d.Reason == "" {
				t.Error("blocked decision must carry a reason")
			}
			if d.Allowed && d.Reason != "" {
				t.Errorf("allowed decision should not carry a reason, got %q", d.Reason)
			}
		})
	}
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}
