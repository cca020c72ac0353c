package interval

import (
	"errors"
	"time"
)

// IndefiniteEnd marks a booking with no planned end date. It is a real
// calendar date, not a null, so every comparison stays total: an open-ended
// booking simply never ends before any date a caller can ask about.
var IndefiniteEnd = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

var ErrEndBeforeStart = errors.New("interval end before start")

// Interval is a closed date range [Start, End]. Both endpoints are occupied
// days. Endpoints are normalized to midnight UTC.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsIndefiniteDate reports whether d is the open-ended sentinel.
func IsIndefiniteDate(d time.Time) bool {
	return !Day(d).Before(IndefiniteEnd)
}

func New(start, end time.Time) (Interval, error) {
	iv := Interval{Start: Day(start), End: Day(end)}
	if iv.End.Before(iv.Start) {
		return Interval{}, ErrEndBeforeStart
	}
	return iv, nil
}

// Indefinite returns [start, IndefiniteEnd].
func Indefinite(start time.Time) Interval {
	return Interval{Start: Day(start), End: IndefiniteEnd}
}

func (iv Interval) IsIndefinite() bool {
	return IsIndefiniteDate(iv.End)
}

// Overlaps reports whether iv and other share at least one day.
func (iv Interval) Overlaps(other Interval) bool {
	return !iv.Start.After(other.End) && !iv.End.Before(other.Start)
}

// Contains reports whether d falls inside iv, endpoints included.
func (iv Interval) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// Clip returns the part of iv inside window; ok is false when they are disjoint.
func (iv Interval) Clip(window Interval) (Interval, bool) {
	out := iv
	if out.Start.Before(window.Start) {
		out.Start = window.Start
	}
	if out.End.After(window.End) {
		out.End = window.End
	}
	if out.End.Before(out.Start) {
		return Interval{}, false
	}
	return out, true
}

// Days is the inclusive day count of iv.
func (iv Interval) Days() int {
	return int(iv.End.Sub(iv.Start).Hours()/24) + 1
}

// Month returns the reporting window covering a full calendar month.
func Month(year int, month time.Month) Interval {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Interval{Start: start, End: start.AddDate(0, 1, -1)}
}

// DaysInMonth is the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
