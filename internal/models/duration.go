package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a duration's end precedes its start.
var ErrInvalidRange = errors.New("end date precedes start date")

// Duration is a closed date interval. Both bounds are inclusive and
// normalized to midnight UTC. Treat values as immutable once constructed.
type Duration struct {
	Start time.Time
	End   time.Time
}

// NewDuration builds an exact interval and rejects inverted ranges.
func NewDuration(start, end time.Time) (Duration, error) {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return Duration{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	return Duration{Start: start, End: end}, nil
}

// MonthOf covers the first through the last day of the given month.
// The day count is leap-year aware.
func MonthOf(month time.Month, year int) Duration {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Duration{Start: start, End: start.AddDate(0, 1, -1)}
}

// YearOf covers Jan 1 through Dec 31 of the given year.
func YearOf(year int) Duration {
	return Duration{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Days returns the inclusive day count of the interval.
func (d Duration) Days() int {
	return int(d.End.Sub(d.Start).Hours()/24) + 1
}

// Contains reports whether the given day falls inside the interval.
func (d Duration) Contains(day time.Time) bool {
	day = DateOf(day)
	return !day.Before(d.Start) && !day.After(d.End)
}

// Dates materializes the exhaustive inclusive day sequence of the interval.
func (d Duration) Dates() []time.Time {
	dates := make([]time.Time, 0, d.Days())
	for day := d.Start; !day.After(d.End); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day)
	}
	return dates
}

// Years lists the calendar years the interval touches, in order.
func (d Duration) Years() []int {
	years := make([]int, 0, d.End.Year()-d.Start.Year()+1)
	for y := d.Start.Year(); y <= d.End.Year(); y++ {
		years = append(years, y)
	}
	return years
}

func (d Duration) String() string {
	return d.Start.Format(DateLayout) + ".." + d.End.Format(DateLayout)
}

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// DateOf truncates a timestamp to its calendar day at midnight UTC.
// Matrix tables key on these values, so every day that enters the system
// goes through here first.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
