// Package calendar converts event times between the storage timezone (UTC)
// and the display timezone (JST), and validates event intervals before
// persistence.
package calendar

import (
	"time"
)

// JST is the fixed display timezone. A fixed offset avoids a runtime tzdata
// dependency; Japan has no daylight saving.
var JST = time.FixedZone("JST", 9*60*60)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// FormatInstant renders a stored UTC instant for the client: the calendar
// date alone for all-day events, a local date-and-time for timed events.
func FormatInstant(t time.Time, allDay bool) string {
	local := t.In(JST)
	if allDay {
		return local.Format(DateLayout)
	}
	return local.Format(DateTimeLayout)
}

// ParseDate interprets a YYYY-MM-DD string as midnight of that date in the
// display zone and returns the UTC instant.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, JST)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:mm clock in the display
// zone and returns the UTC instant. An empty clock means midnight.
func ParseDateTime(date, clock string) (time.Time, error) {
	if clock == "" {
		return ParseDate(date)
	}
	t, err := time.ParseInLocation(DateTimeLayout, date+"T"+clock, JST)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
