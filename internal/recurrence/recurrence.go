// Package recurrence expands a recurrence rule into concrete payment dates.
// All functions are pure: nothing here touches the database or the clock.
package recurrence

import (
	"errors"
	"time"
)

// Unit is the interval between two occurrences of a recurring item.
type Unit string

const (
	Daily    Unit = "daily"
	Weekly   Unit = "weekly"
	Biweekly Unit = "biweekly"
	Monthly  Unit = "monthly"
	Yearly   Unit = "yearly"
	Once     Unit = "once"
)

var (
	// ErrInvalidUnit reports a recurrence unit outside the supported set.
	ErrInvalidUnit = errors.New("recurrence: unsupported unit")

	// ErrNegativeCount reports the reserved "until cancelled" sentinel.
	// Open-ended recurrences have no eager expansion, so Expand rejects them.
	ErrNegativeCount = errors.New("recurrence: negative recurrence count")

	// ErrUnparsableAnchor reports an anchor timestamp in no accepted format.
	ErrUnparsableAnchor = errors.New("recurrence: unparsable anchor timestamp")
)

// Valid reports whether u is a supported recurrence unit.
func (u Unit) Valid() bool {
	switch u {
	case Daily, Weekly, Biweekly, Monthly, Yearly, Once:
		return true
	}
	return false
}

// Expand produces the payment dates for an item anchored at anchor that
// recurs count more times: the anchor itself followed by count dates, the
// i-th offset by i recurrence units from the anchor. Month and year steps
// are calendar-aware: the day of month is clamped to the last valid day of
// the target month, so a March 31 anchor recurs on April 30, May 31, June 30.
// Offsets are always taken from the anchor, never from the previous
// occurrence, so the clamped April date does not shorten later months.
//
// Once yields only the anchor regardless of count. A negative count is the
// "until cancelled" sentinel and is rejected with ErrNegativeCount.
func Expand(anchor time.Time, unit Unit, count int) ([]time.Time, error) {
	if !unit.Valid() {
		return nil, ErrInvalidUnit
	}
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if unit == Once {
		return []time.Time{anchor}, nil
	}

	dates := make([]time.Time, 0, count+1)
	dates = append(dates, anchor)
	for i := 1; i <= count; i++ {
		dates = append(dates, step(anchor, unit, i))
	}
	return dates, nil
}

// step returns the anchor offset by n units.
func step(anchor time.Time, unit Unit, n int) time.Time {
	switch unit {
	case Daily:
		return anchor.AddDate(0, 0, n)
	case Weekly:
		return anchor.AddDate(0, 0, 7*n)
	case Biweekly:
		return anchor.AddDate(0, 0, 14*n)
	case Monthly:
		return addMonths(anchor, n)
	case Yearly:
		return addMonths(anchor, 12*n)
	default:
		return anchor
	}
}

// addMonths adds months to t, clamping the day of month to the last valid
// day of the target month. time.Time.AddDate normalizes instead (March 31
// plus one month becomes May 1), which is wrong for payment schedules.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	shifted := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	if last := daysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month. Day zero of the
// following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// anchorLayouts are the accepted anchor timestamp formats, tried in order.
var anchorLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseAnchor parses an anchor timestamp. Layouts without an explicit zone
// are interpreted as UTC.
func ParseAnchor(s string) (time.Time, error) {
	for _, layout := range anchorLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableAnchor
}
