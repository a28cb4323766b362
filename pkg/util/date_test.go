package util

import (
	"testing"
	"time"
)

func TestSubBusinessDaysFromWeekday(t *testing.T) {
	// Monday 2024-10-14 minus one business day is Friday 2024-10-11.
	mon := time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC)
	got := SubBusinessDays(mon, 1)
	if got.Weekday() != time.Friday || got.Day() != 11 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestSubBusinessDaysFromWeekend(t *testing.T) {
	// Saturday 2024-10-12 minus one business day is Friday 2024-10-11.
	sat := time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)
	got := SubBusinessDays(sat, 1)
	if got.Weekday() != time.Friday || got.Day() != 11 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestBusinessWindowWeekday(t *testing.T) {
	// Friday asOf with a 5-day window reaches back to Monday of the same week.
	fri := time.Date(2024, 10, 18, 15, 30, 0, 0, time.UTC)
	start, end := BusinessWindow(fri, 5)
	if !SameDate(end, fri) {
		t.Fatalf("window must end on asOf, got %v", end)
	}
	if start.Weekday() != time.Monday || start.Day() != 14 {
		t.Fatalf("unexpected start %v", start)
	}
}

func TestBusinessWindowWeekend(t *testing.T) {
	// Saturday asOf: the last counted day is the prior Friday.
	sat := time.Date(2024, 10, 19, 0, 0, 0, 0, time.UTC)
	start, _ := BusinessWindow(sat, 5)
	if start.Weekday() != time.Monday || start.Day() != 14 {
		t.Fatalf("unexpected start %v", start)
	}
	if InBusinessWindow(sat, start, Midnight(sat)) {
		t.Fatalf("weekend day must not count as part of the window")
	}
	fri := time.Date(2024, 10, 18, 0, 0, 0, 0, time.UTC)
	if !InBusinessWindow(fri, start, Midnight(sat)) {
		t.Fatalf("prior friday must be inside the window")
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Format(DateLayout) != "2024-10-10" {
		t.Fatalf("unexpected date %v", got)
	}
	if _, ok := ParseDate("10/10/2024"); ok {
		t.Fatalf("expected parse failure")
	}
}
