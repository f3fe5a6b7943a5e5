package roster

import (
	"fmt"
	"time"
)

// Roster mutation is gated by a weekly blackout so a studio cannot snipe a
// movie after its weekend numbers are effectively known. Acquisitions and
// retirements are allowed Tuesday through Thursday before 20:00 league
// time; everything else is blocked. The guard is stateless and evaluated
// per request against the league's local clock; it never mutates state.

// Decision is the guard's verdict with a human-readable reason when blocked
type Decision struct {
	Allowed bool
	Reason  string
}

// CheckAcquisitionWindow evaluates the blackout policy at now in loc
func CheckAcquisitionWindow(now time.Time, loc *time.Location) Decision {
	local := now.In(loc)
	wd := local.Weekday()

	open := wd == time.Tuesday || wd == time.Wednesday || wd == time.Thursday
	if open && local.Hour() < 20 {
		return Decision{Allowed: true}
	}

	return Decision{
		Allowed: false,
		Reason: fmt.Sprintf(
			"roster changes are locked from Thursday 20:00 until Tuesday; it is %s %02d:%02d league time",
			wd, local.Hour(), local.Minute(),
		),
	}
}
