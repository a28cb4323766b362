package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/internal/services/signal"
	"DropWatch/pkg/logger"
)

type fakeSymbols struct{ list []string }

func (f *fakeSymbols) Symbols(context.Context) ([]string, error) { return f.list, nil }

type fakePrices struct {
	series map[string]models.PriceSeries
	errs   map[string]error
}

func (f *fakePrices) History(_ context.Context, symbol string, _ domrepo.Period, _ domrepo.Interval) (models.PriceSeries, error) {
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.series[symbol], nil
}

type fakeSectors struct{ m map[string]string }

func (f *fakeSectors) Sector(_ context.Context, symbol string) (string, error) {
	if s, ok := f.m[symbol]; ok {
		return s, nil
	}
	return "Unknown", nil
}

type nopMetrics struct{}

func (nopMetrics) RecordSymbolScanned()                {}
func (nopMetrics) RecordSymbolSkipped(string)          {}
func (nopMetrics) RecordAlert(string)                  {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordLastPrice(string, float64)     {}
func (nopMetrics) RecordLatency(string, float64)       {}
func (nopMetrics) RecordRunCompleted(time.Time)        {}

func scanLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func flatSeries(days int, asOf time.Time, close float64) models.PriceSeries {
	s := make(models.PriceSeries, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := asOf.AddDate(0, 0, -i)
		s = append(s, models.PriceBar{Date: d, Open: close, High: close + 1, Low: close - 1, Close: close})
	}
	return s
}

func TestScanPreservesUniverseOrder(t *testing.T) {
	asOf := d(2025, 6, 13)
	universe := make([]string, 0, 40)
	prices := &fakePrices{series: map[string]models.PriceSeries{}}
	for i := 0; i < 40; i++ {
		sym := fmt.Sprintf("SYM%02d", i)
		universe = append(universe, sym)
		prices.series[sym] = flatSeries(10, asOf, float64(50+i))
	}

	sc := NewScanner(ScannerParams{
		Symbols:     &fakeSymbols{list: universe},
		Prices:      prices,
		Sectors:     &fakeSectors{},
		Engine:      signal.NewEngine(-5),
		Metrics:     nopMetrics{},
		Logger:      scanLogger(t),
		Concurrency: 8,
	})

	res, err := sc.Scan(context.Background(), asOf)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res.Records) != 40 {
		t.Fatalf("records = %d, want 40", len(res.Records))
	}
	for i, rec := range res.Records {
		if rec.Symbol != universe[i] {
			t.Fatalf("record %d = %s, want %s (order must survive the pool)", i, rec.Symbol, universe[i])
		}
	}
	if len(res.Sectors) != len(res.Records) {
		t.Fatalf("sectors and records must stay parallel")
	}
}

func TestScanSkipsFaultySymbols(t *testing.T) {
	asOf := d(2025, 6, 13)
	sc := NewScanner(ScannerParams{
		Symbols: &fakeSymbols{list: []string{"GOOD", "SHORT", "BROKEN"}},
		Prices: &fakePrices{
			series: map[string]models.PriceSeries{
				"GOOD":  flatSeries(10, asOf, 100),
				"SHORT": flatSeries(1, asOf, 100),
			},
			errs: map[string]error{"BROKEN": fmt.Errorf("http 500")},
		},
		Sectors:     &fakeSectors{m: map[string]string{"GOOD": "Technology"}},
		Engine:      signal.NewEngine(-5),
		Metrics:     nopMetrics{},
		Logger:      scanLogger(t),
		Concurrency: 2,
	})

	res, err := sc.Scan(context.Background(), asOf)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.Scanned != 1 || res.Skipped != 2 {
		t.Fatalf("scanned=%d skipped=%d, want 1/2", res.Scanned, res.Skipped)
	}
	if res.Records[0].Symbol != "GOOD" || res.Sectors[0] != "Technology" {
		t.Fatalf("surviving record = %s/%s", res.Records[0].Symbol, res.Sectors[0])
	}
}
