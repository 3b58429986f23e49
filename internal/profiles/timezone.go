package profiles

import (
	"time"

	"github.com/2beens/fitnessxs/pkg"
)

const DefaultTimezone = "UTC"

// LoadLocation falls back to UTC for empty or unknown zone names.
func LoadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the calendar day of now in the given timezone.
func Today(now time.Time, tz string) pkg.Date {
	return pkg.DateOf(now.In(LoadLocation(tz)))
}
