package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/internal/services/ratelimit"
	"DropWatch/internal/services/signal"
	"DropWatch/pkg/logger"
)

const chartLimiterKey = "yahoo-chart"

// Scanner walks the symbol universe, fetches price history through a
// bounded worker pool and computes one SignalRecord per usable symbol.
// Output order matches universe order so the report reflects market-cap
// tiers; a faulty symbol is logged and dropped without sinking the run.
type Scanner struct {
	symbols  domrepo.SymbolSource
	prices   domrepo.PriceSource
	sectors  domrepo.SectorSource
	engine   *signal.Engine
	limiter  *ratelimit.Limiter
	metrics  domrepo.Metrics
	log      *logger.Logger
	period   domrepo.Period
	interval domrepo.Interval

	concurrency int
	ratePerSec  float64
}

type ScannerParams struct {
	Symbols     domrepo.SymbolSource
	Prices      domrepo.PriceSource
	Sectors     domrepo.SectorSource
	Engine      *signal.Engine
	Metrics     domrepo.Metrics
	Logger      *logger.Logger
	Period      string
	Interval    string
	Concurrency int
	RatePerSec  float64
}

func NewScanner(p ScannerParams) *Scanner {
	if p.Concurrency < 1 {
		p.Concurrency = 1
	}
	return &Scanner{
		symbols:     p.Symbols,
		prices:      p.Prices,
		sectors:     p.Sectors,
		engine:      p.Engine,
		limiter:     ratelimit.New(),
		metrics:     p.Metrics,
		log:         p.Logger,
		period:      domrepo.NormalizePeriod(p.Period),
		interval:    domrepo.NormalizeInterval(p.Interval),
		concurrency: p.Concurrency,
		ratePerSec:  p.RatePerSec,
	}
}

// ScanResult carries the parallel record/sector slices plus scan counters.
type ScanResult struct {
	Records []*models.SignalRecord
	Sectors []string
	Scanned int
	Skipped int
}

// Scan evaluates the whole universe as of asOf.
func (s *Scanner) Scan(ctx context.Context, asOf time.Time) (*ScanResult, error) {
	universe, err := s.symbols.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	s.log.Info("universe loaded", logger.Int("symbols", len(universe)))

	// Slots are indexed by universe position; workers fill them out of
	// order and the compaction below restores input order.
	slots := make([]*models.SignalRecord, len(universe))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)

	for i, sym := range universe {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(idx int, symbol string) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[idx] = s.scanOne(ctx, symbol, asOf)
		}(i, sym)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ScanResult{}
	for _, rec := range slots {
		if rec == nil {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
		res.Scanned++
	}

	// Sector lookups run sequentially behind the cache; the decorator's
	// delay keeps the profile endpoint happy on cold caches.
	res.Sectors = make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		sector, err := s.sectors.Sector(ctx, rec.Symbol)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			sector = "Unknown"
		}
		res.Sectors = append(res.Sectors, sector)
	}

	s.log.Info("scan complete",
		logger.Int("scanned", res.Scanned),
		logger.Int("skipped", res.Skipped))
	return res, nil
}

func (s *Scanner) scanOne(ctx context.Context, symbol string, asOf time.Time) *models.SignalRecord {
	if s.ratePerSec > 0 {
		if err := s.limiter.Wait(ctx, chartLimiterKey, s.ratePerSec, s.ratePerSec); err != nil {
			return nil
		}
	}

	series, err := s.prices.History(ctx, symbol, s.period, s.interval)
	if err != nil {
		s.log.Warn("history fetch failed", logger.String("symbol", symbol), logger.Error(err))
		s.metrics.RecordSymbolSkipped("fetch_error")
		s.metrics.RecordError("price_fetch")
		return nil
	}

	rec, err := s.engine.Compute(series, asOf)
	if err != nil {
		s.log.Warn("signal compute failed", logger.String("symbol", symbol), logger.Error(err))
		s.metrics.RecordSymbolSkipped("compute_error")
		s.metrics.RecordError("signal_compute")
		return nil
	}
	if rec == nil {
		s.metrics.RecordSymbolSkipped("short_history")
		return nil
	}

	rec.Symbol = symbol
	s.metrics.RecordSymbolScanned()
	s.metrics.RecordLastPrice(symbol, rec.LatestPrice)
	return rec
}
