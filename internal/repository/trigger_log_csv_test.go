package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"DropWatch/internal/domain/models"
	"DropWatch/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTriggerLogRoundTrip(t *testing.T) {
	tl, err := NewCSVTriggerLog(t.TempDir(), testLogger(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	date := utcDate(2025, 6, 2) // Monday
	entries := []models.TriggerLogEntry{
		{Symbol: "AAPL", Date: date, AlertType: models.AlertPctDrop},
		{Symbol: "MSFT", Date: date, AlertType: models.AlertBelow3mLow},
	}
	if err := tl.Append(context.Background(), date, entries); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := tl.ReadWindow(context.Background(), date, date)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Symbol != "AAPL" || got[0].AlertType != models.AlertPctDrop {
		t.Fatalf("first entry = %+v", got[0])
	}
	if !got[0].Date.Equal(date) {
		t.Fatalf("date = %v, want %v", got[0].Date, date)
	}
}

func TestTriggerLogOverwrite(t *testing.T) {
	tl, err := NewCSVTriggerLog(t.TempDir(), testLogger(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	date := utcDate(2025, 6, 3)
	ctx := context.Background()

	first := []models.TriggerLogEntry{
		{Symbol: "AAPL", Date: date, AlertType: models.AlertPctDrop},
		{Symbol: "MSFT", Date: date, AlertType: models.AlertPctDrop},
	}
	if err := tl.Append(ctx, date, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	second := []models.TriggerLogEntry{
		{Symbol: "NVDA", Date: date, AlertType: models.AlertDownStreak},
	}
	if err := tl.Append(ctx, date, second); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	got, err := tl.ReadWindow(ctx, date, date)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "NVDA" {
		t.Fatalf("re-run must replace the partition, got %+v", got)
	}
}

func TestTriggerLogReadWindowSkipsWeekendsAndMissing(t *testing.T) {
	tl, err := NewCSVTriggerLog(t.TempDir(), testLogger(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	fri := utcDate(2025, 6, 6)
	sat := utcDate(2025, 6, 7)
	mon := utcDate(2025, 6, 9)

	if err := tl.Append(ctx, fri, []models.TriggerLogEntry{{Symbol: "A", Date: fri, AlertType: models.AlertPctDrop}}); err != nil {
		t.Fatalf("append fri: %v", err)
	}
	// A weekend partition exists but must never be read.
	if err := tl.Append(ctx, sat, []models.TriggerLogEntry{{Symbol: "SAT", Date: sat, AlertType: models.AlertPctDrop}}); err != nil {
		t.Fatalf("append sat: %v", err)
	}
	if err := tl.Append(ctx, mon, []models.TriggerLogEntry{{Symbol: "B", Date: mon, AlertType: models.AlertPctDrop}}); err != nil {
		t.Fatalf("append mon: %v", err)
	}

	got, err := tl.ReadWindow(ctx, fri, mon)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %+v, want fri+mon only", got)
	}
	for _, e := range got {
		if e.Symbol == "SAT" {
			t.Fatalf("weekend partition leaked into the window")
		}
	}
}

func TestTriggerLogSkipsMalformedPartition(t *testing.T) {
	dir := t.TempDir()
	tl, err := NewCSVTriggerLog(dir, testLogger(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	mon := utcDate(2025, 6, 9)
	tue := utcDate(2025, 6, 10)
	if err := tl.Append(ctx, tue, []models.TriggerLogEntry{{Symbol: "OK", Date: tue, AlertType: models.AlertPctDrop}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	bad := filepath.Join(dir, "trigger_log_2025-06-09.csv")
	if err := os.WriteFile(bad, []byte("not,a,valid\ncsv"), 0o644); err != nil {
		t.Fatalf("write bad partition: %v", err)
	}

	got, err := tl.ReadWindow(ctx, mon, tue)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "OK" {
		t.Fatalf("malformed partition must be skipped, got %+v", got)
	}
}
