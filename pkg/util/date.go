package util

import (
	"time"
)

// DateLayout is the calendar-date layout used for log partitions and report headers.
const DateLayout = "2006-01-02"

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// SubBusinessDays steps n business days back from t. Weekend days are
// skipped, so stepping one day back from a Saturday lands on Friday.
func SubBusinessDays(t time.Time, n int) time.Time {
	d := Midnight(t)
	for i := 0; i < n; i++ {
		d = d.AddDate(0, 0, -1)
		for !IsBusinessDay(d) {
			d = d.AddDate(0, 0, -1)
		}
	}
	return d
}

// BusinessWindow returns the inclusive [start, end] date range covering the
// most recent daysBack business days as of asOf. A weekday asOf is itself the
// last day of the window; on weekends the window ends at the prior business
// day (callers still filter to business days, so end stays at asOf's date).
func BusinessWindow(asOf time.Time, daysBack int) (start, end time.Time) {
	end = Midnight(asOf)
	if IsBusinessDay(asOf) {
		start = SubBusinessDays(asOf, daysBack-1)
	} else {
		start = SubBusinessDays(asOf, daysBack)
	}
	return start, end
}

// InBusinessWindow reports whether d is a business day inside [start, end].
func InBusinessWindow(d, start, end time.Time) bool {
	day := Midnight(d)
	return IsBusinessDay(day) && !day.Before(start) && !day.After(end)
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
