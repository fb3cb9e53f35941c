package maintenance

import (
	"fmt"
	"time"
)

// NextDailyRun returns the next occurrence of an HH:MM wall-clock time
// in the given timezone, strictly after now
func NextDailyRun(now time.Time, hhmm string, tz *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid batch time %q: %w", hhmm, err)
	}

	local := now.In(tz)
	next := time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, tz)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
