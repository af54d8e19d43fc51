// Package period converts timestamps to canonical period keys and period
// keys back to comparable day ordinals.
//
// Daily keys look like "2025-01-31". Weekly keys look like "2025-W05" and
// use the ISO-8601 week-numbering year, which can differ from the calendar
// year around New Year (2025-12-29 falls in 2026-W01).
package period

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
)

// ErrMalformedKey is returned when a period key cannot be parsed for the
// given cadence.
var ErrMalformedKey = errors.New("malformed period key")

// Key encodes a point in time as the canonical period key for the cadence.
func Key(when time.Time, cadence models.Cadence) string {
	switch cadence {
	case models.CadenceWeekly:
		year, week := when.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return when.Format(constants.DateFormat)
	}
}

// Step returns the gap in day ordinals between two calendar-adjacent
// periods: 1 for daily, 7 for weekly.
func Step(cadence models.Cadence) int {
	if cadence == models.CadenceWeekly {
		return 7
	}
	return 1
}

// Ordinal decodes a period key into a proleptic day ordinal (day 1 is
// 0001-01-01). Weekly keys decode to the ordinal of the Monday of the ISO
// week, so ordinals of the same cadence differing by exactly Step(cadence)
// always name calendar-adjacent periods, including across month, year, and
// ISO-year boundaries.
func Ordinal(key string, cadence models.Cadence) (int, error) {
	if cadence == models.CadenceWeekly {
		return weeklyOrdinal(key)
	}
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	return dayOrdinal(t), nil
}

func weeklyOrdinal(key string) (int, error) {
	// Exactly "YYYY-Www".
	if len(key) != 8 || key[4] != '-' || key[5] != 'W' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	year, err := strconv.Atoi(key[:4])
	if err != nil || year < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	week, err := strconv.Atoi(key[6:])
	if err != nil || week < 1 || week > 53 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}

	monday := isoWeekStart(year, week)

	// Week 53 only exists in long ISO years; reject keys naming a week
	// the year does not have.
	if gotYear, gotWeek := monday.ISOWeek(); gotYear != year || gotWeek != week {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}

	return dayOrdinal(monday), nil
}

// isoWeekStart returns the Monday of the given ISO week. January 4 is
// always in ISO week 1 of its calendar year.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -sinceMonday)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// unixEpochOrdinal is the proleptic day ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

func dayOrdinal(t time.Time) int {
	return int(t.Unix()/86400) + unixEpochOrdinal
}
