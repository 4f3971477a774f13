package stats

import "time"

// Range selects the reporting window. Every range maps to a fixed bucket
// count and a grouping granularity; series built from it are always dense.
type Range string

const (
	RangeLastWeek   Range = "last week"
	RangeLastMonth  Range = "last month"
	RangeLastYear   Range = "last year"
	RangeLast3Years Range = "last 3 years"
)

// ParseRange falls back to last week for unrecognized selectors.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeLastWeek, RangeLastMonth, RangeLastYear, RangeLast3Years:
		return Range(s)
	}

	return RangeLastWeek
}

type Granularity int

const (
	ByDay Granularity = iota
	ByMonth
)

func (r Range) Buckets() int {
	switch r {
	case RangeLastMonth:
		return 31
	case RangeLastYear:
		return 12
	case RangeLast3Years:
		return 36
	default:
		return 7
	}
}

func (r Range) Granularity() Granularity {
	switch r {
	case RangeLastYear, RangeLast3Years:
		return ByMonth
	default:
		return ByDay
	}
}

// WindowStart is the inclusive lower bound of the trailing window.
func (r Range) WindowStart(now time.Time) time.Time {
	switch r {
	case RangeLastMonth:
		return now.AddDate(0, -1, 0)
	case RangeLastYear:
		return now.AddDate(-1, 0, 0)
	case RangeLast3Years:
		return now.AddDate(-3, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// Slot maps a bucket timestamp to its 1-based series slot: weekday (Sunday is
// slot 1) for the week range, day of month for the month range, month of year
// for the year range, and month offset anchored at the current month for the
// three-year range. The series is anchored at now, so a bucket more than one
// full series length back returns 0 instead of aliasing onto a newer bucket's
// slot.
func (r Range) Slot(t, now time.Time) int {
	var slot int

	switch r {
	case RangeLastMonth:
		if d := daysBetween(t, now); d < 0 || d >= 31 {
			return 0
		}

		slot = t.Day()
	case RangeLastYear:
		if m := monthsBetween(t, now); m < 0 || m >= 12 {
			return 0
		}

		slot = int(t.Month())
	case RangeLast3Years:
		m := monthsBetween(t, now)
		if m < 0 || m >= 36 {
			return 0
		}

		slot = 36 - m
	default:
		if d := daysBetween(t, now); d < 0 || d >= 7 {
			return 0
		}

		slot = int(t.Weekday()) + 1
	}

	if slot < 1 || slot > r.Buckets() {
		return 0
	}

	return slot
}

// monthsBetween counts whole calendar months from t's month up to now's.
func monthsBetween(t, now time.Time) int {
	return (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
}

// daysBetween counts calendar days from t's date up to now's, ignoring the
// time of day.
func daysBetween(t, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()

	from := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	to := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from) / (24 * time.Hour))
}
