package repository

import (
	"context"
	"time"

	"DropWatch/internal/domain/models"
)

// SymbolSource lists the ticker universe to scan.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// PriceSource fetches daily history for one symbol.
type PriceSource interface {
	History(ctx context.Context, symbol string, period Period, interval Interval) (models.PriceSeries, error)
}

// SectorSource resolves a symbol to its sector name.
type SectorSource interface {
	Sector(ctx context.Context, symbol string) (string, error)
}

// MarketSource fetches benchmark index day-over-day changes.
type MarketSource interface {
	Overview(ctx context.Context, symbols []string) ([]models.IndexChange, error)
}

// TriggerLogWriter appends trigger rows to the daily partition.
type TriggerLogWriter interface {
	Append(ctx context.Context, date time.Time, entries []models.TriggerLogEntry) error
}

// TriggerLogReader loads trigger rows for a set of business days. Missing
// partitions are not an error; they contribute no rows.
type TriggerLogReader interface {
	ReadWindow(ctx context.Context, from, to time.Time) ([]models.TriggerLogEntry, error)
}

// TriggerPublisher emits trigger events to the stream backend.
type TriggerPublisher interface {
	Publish(ctx context.Context, events []models.TriggerEvent) error
	Close() error
}

// SignalStore persists per-run signal records for later querying.
type SignalStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreBatch(ctx context.Context, records []*models.SignalRecord) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.SignalRecord, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Metrics abstracts run instrumentation.
type Metrics interface {
	RecordSymbolScanned()
	RecordSymbolSkipped(reason string)
	RecordAlert(alertType string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordRunCompleted(at time.Time)
}
