package timeutil

import (
	"math"
	"time"
)

// Day is the half-open business-day bucket [Start, End) used to group
// attendance by calendar day. Start is local midnight in the business
// timezone, End is Start + 24h.
type Day struct {
	Start time.Time
	End   time.Time
}

// DayOf resolves t to its business-day bucket in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Day{Start: start, End: start.Add(24 * time.Hour)}
}

// Contains reports whether t falls inside the bucket.
func (d Day) Contains(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.End)
}

// RoundMinutes converts a duration to whole minutes, rounding half up on
// millisecond-resolution input. Each break span and the overall elapsed span
// are rounded independently at check-out, so the derived work time can drift
// by ±1 minute from the raw spans. That drift is accepted; callers must not
// "fix" it by rounding once over the combined span.
func RoundMinutes(d time.Duration) int {
	return int(math.Floor(float64(d.Milliseconds())/60000.0 + 0.5))
}
