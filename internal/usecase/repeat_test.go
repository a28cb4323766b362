package usecase

import (
	"context"
	"testing"
	"time"

	"DropWatch/internal/domain/models"
)

type stubTriggerReader struct {
	entries  []models.TriggerLogEntry
	lastFrom time.Time
	lastTo   time.Time
}

func (s *stubTriggerReader) ReadWindow(_ context.Context, from, to time.Time) ([]models.TriggerLogEntry, error) {
	s.lastFrom, s.lastTo = from, to
	var out []models.TriggerLogEntry
	for _, e := range s.entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func entry(sym string, date time.Time, at models.AlertType) models.TriggerLogEntry {
	return models.TriggerLogEntry{Symbol: sym, Date: date, AlertType: at}
}

func TestCountRepeats(t *testing.T) {
	// 2025-06-13 is a Friday; window of 5 business days = Mon 9th .. Fri 13th.
	asOf := d(2025, 6, 13)
	reader := &stubTriggerReader{entries: []models.TriggerLogEntry{
		entry("AAPL", d(2025, 6, 9), models.AlertPctDrop),
		entry("AAPL", d(2025, 6, 11), models.AlertPctDrop),
		entry("AAPL", d(2025, 6, 13), models.AlertPctDrop),
		entry("MSFT", d(2025, 6, 10), models.AlertPctDrop),
		// Different alert type never counts toward pct-drop repeats.
		entry("MSFT", d(2025, 6, 11), models.AlertDownStreak),
		// Outside the window.
		entry("NVDA", d(2025, 6, 6), models.AlertPctDrop),
	}}

	det := NewRepeatDetector(reader)
	counts, err := det.CountRepeats(context.Background(), models.AlertPctDrop, asOf, 5)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if counts["AAPL"] != 3 {
		t.Fatalf("AAPL = %d, want 3", counts["AAPL"])
	}
	if counts["MSFT"] != 1 {
		t.Fatalf("MSFT = %d, want 1", counts["MSFT"])
	}
	if _, ok := counts["NVDA"]; ok {
		t.Fatalf("NVDA outside window must not appear")
	}

	if !reader.lastFrom.Equal(d(2025, 6, 9)) {
		t.Fatalf("window start = %v, want Mon 2025-06-09", reader.lastFrom)
	}
	if !reader.lastTo.Equal(asOf) {
		t.Fatalf("window end = %v, want asOf", reader.lastTo)
	}
}

func TestCountRepeatsWeekendAsOf(t *testing.T) {
	// Saturday asOf: the window ends on Friday and reaches back a full
	// 5 business days, Mon 9th .. Fri 13th.
	asOf := d(2025, 6, 14)
	reader := &stubTriggerReader{entries: []models.TriggerLogEntry{
		entry("AAPL", d(2025, 6, 9), models.AlertPctDrop),
		entry("AAPL", d(2025, 6, 13), models.AlertPctDrop),
		entry("AAPL", d(2025, 6, 6), models.AlertPctDrop), // prior Friday, outside
	}}

	det := NewRepeatDetector(reader)
	counts, err := det.CountRepeats(context.Background(), models.AlertPctDrop, asOf, 5)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["AAPL"] != 2 {
		t.Fatalf("AAPL = %d, want 2", counts["AAPL"])
	}
	if !reader.lastFrom.Equal(d(2025, 6, 9)) {
		t.Fatalf("window start = %v, want Mon 2025-06-09", reader.lastFrom)
	}
}

func TestCountRepeatsDedupesSameDay(t *testing.T) {
	asOf := d(2025, 6, 13)
	reader := &stubTriggerReader{entries: []models.TriggerLogEntry{
		entry("AAPL", d(2025, 6, 12), models.AlertPctDrop),
		entry("AAPL", d(2025, 6, 12), models.AlertPctDrop),
	}}
	det := NewRepeatDetector(reader)
	counts, err := det.CountRepeats(context.Background(), models.AlertPctDrop, asOf, 5)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["AAPL"] != 1 {
		t.Fatalf("duplicate same-day rows must count once, got %d", counts["AAPL"])
	}
}

func TestCountRepeatsRejectsBadWindow(t *testing.T) {
	det := NewRepeatDetector(&stubTriggerReader{})
	if _, err := det.CountRepeats(context.Background(), models.AlertPctDrop, d(2025, 6, 13), 0); err == nil {
		t.Fatalf("expected error for zero window")
	}
}
