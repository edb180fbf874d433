package calendar

import (
	"errors"
	"time"
)

var (
	// ErrAllDayInterval rejects all-day events whose exclusive end date is
	// not strictly after the start date.
	ErrAllDayInterval = errors.New("all-day events must end on a later date than they start")
	// ErrTimedInterval rejects timed events ending before they start. Equal
	// start and end is allowed: it represents an event with a start time and
	// no explicit end.
	ErrTimedInterval = errors.New("event end must not be before event start")
	// ErrOutsideWindow rejects events starting outside the accepted
	// scheduling window.
	ErrOutsideWindow = errors.New("event start must fall between one month in the past and one year in the future")
)

// ValidateInterval enforces the ordering invariant between start and end.
func ValidateInterval(start, end time.Time, allDay bool) error {
	if allDay {
		if !start.Before(end) {
			return ErrAllDayInterval
		}
		return nil
	}
	if end.Before(start) {
		return ErrTimedInterval
	}
	return nil
}

// ValidateStartWindow enforces the sliding submission window on the event
// start: no earlier than one month before now, no later than one year after.
func ValidateStartWindow(start, now time.Time) error {
	if start.Before(now.AddDate(0, -1, 0)) {
		return ErrOutsideWindow
	}
	if start.After(now.AddDate(1, 0, 0)) {
		return ErrOutsideWindow
	}
	return nil
}
