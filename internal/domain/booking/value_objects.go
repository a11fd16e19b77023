package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("interval start must be before end")

// Interval is a half-open time range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// Overlaps reports whether two half-open intervals intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && e1 > s2.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && iv.end.After(other.start)
}

// Shift returns the interval translated by d, preserving duration.
func (iv Interval) Shift(d time.Duration) Interval {
	return Interval{start: iv.start.Add(d), end: iv.end.Add(d)}
}

// ShiftDate returns the interval moved so its start falls on the given
// calendar day at the same clock time. Used by recurrence expansion where
// calendar arithmetic (months, DST) makes fixed-duration shifts wrong.
func (iv Interval) ShiftDate(years, months, days int) Interval {
	return Interval{
		start: iv.start.AddDate(years, months, days),
		end:   iv.end.AddDate(years, months, days),
	}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s,%s)", iv.start.Format(time.RFC3339), iv.end.Format(time.RFC3339))
}
