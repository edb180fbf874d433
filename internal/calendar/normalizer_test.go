package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInstantAllDay(t *testing.T) {
	// 2024-04-09T15:00Z is 2024-04-10T00:00 JST
	stored := time.Date(2024, 4, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-04-10", FormatInstant(stored, true))
}

func TestFormatInstantTimed(t *testing.T) {
	stored := time.Date(2024, 4, 10, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-04-10T10:30", FormatInstant(stored, false))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-04-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 9, 15, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("2024/04/10")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-04-10", "10:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 10, 1, 30, 0, 0, time.UTC), got)

	// Empty clock means local midnight
	got, err = ParseDateTime("2024-04-10", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 9, 15, 0, 0, 0, time.UTC), got)

	_, err = ParseDateTime("2024-04-10", "25:00")
	assert.Error(t, err)
}

func TestAllDayRoundTripPreservesDate(t *testing.T) {
	for _, date := range []string{"2024-01-01", "2024-06-15", "2024-12-31"} {
		stored, err := ParseDate(date)
		require.NoError(t, err)
		assert.Equal(t, date, FormatInstant(stored, true))
	}
}

func TestTimedRoundTripPreservesInstant(t *testing.T) {
	stored, err := ParseDateTime("2024-04-10", "10:30")
	require.NoError(t, err)

	rendered := FormatInstant(stored, false)
	back, err := ParseDateTime(rendered[:10], rendered[11:])
	require.NoError(t, err)
	assert.True(t, stored.Equal(back))
}

func TestValidateIntervalAllDay(t *testing.T) {
	start, _ := ParseDate("2024-04-10")
	end, _ := ParseDate("2024-04-11")

	assert.NoError(t, ValidateInterval(start, end, true))

	// Equal dates are rejected for all-day events: the exclusive end must be
	// at least the day after the start.
	assert.ErrorIs(t, ValidateInterval(start, start, true), ErrAllDayInterval)
	assert.ErrorIs(t, ValidateInterval(end, start, true), ErrAllDayInterval)
}

func TestValidateIntervalTimed(t *testing.T) {
	start, _ := ParseDateTime("2024-04-10", "10:00")
	end, _ := ParseDateTime("2024-04-10", "11:00")

	assert.NoError(t, ValidateInterval(start, end, false))

	// Equal instants are accepted for timed events: start time with no
	// explicit end. The asymmetry with the all-day rule is intentional.
	assert.NoError(t, ValidateInterval(start, start, false))

	assert.ErrorIs(t, ValidateInterval(end, start, false), ErrTimedInterval)
}

func TestValidateStartWindow(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateStartWindow(now, now))
	assert.NoError(t, ValidateStartWindow(now.AddDate(0, 0, 300), now))
	assert.NoError(t, ValidateStartWindow(now.AddDate(0, 0, -20), now))

	assert.ErrorIs(t, ValidateStartWindow(now.AddDate(0, 0, 400), now), ErrOutsideWindow)
	assert.ErrorIs(t, ValidateStartWindow(now.AddDate(0, 0, -40), now), ErrOutsideWindow)
}

func TestColorFor(t *testing.T) {
	palette := NewPalette(nil, "")

	assert.Equal(t, "#e8433b", palette.ColorFor(1))
	assert.Equal(t, defaultFallback, palette.ColorFor(999))

	custom := NewPalette(map[int]string{1: "#000000"}, "#ffffff")
	assert.Equal(t, "#000000", custom.ColorFor(1))
	assert.Equal(t, "#ffffff", custom.ColorFor(2))
}
