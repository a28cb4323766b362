package yahoo

import (
	"context"

	"DropWatch/internal/domain/models"
	"DropWatch/internal/domain/repository"
	"DropWatch/pkg/config"
	"DropWatch/pkg/logger"
)

// MarketSource computes day-over-day moves for benchmark indexes from
// recent daily bars.
type MarketSource struct {
	charts *ChartSource
	log    *logger.Logger
}

func NewMarketSource(cfg *config.Config, log *logger.Logger) *MarketSource {
	return &MarketSource{charts: NewChartSource(cfg, log), log: log}
}

// Overview returns one IndexChange per requested symbol, in input order.
// A failed quote yields a nil ChangePct rather than an error; the report
// header degrades gracefully when a benchmark is unavailable.
func (m *MarketSource) Overview(ctx context.Context, symbols []string) ([]models.IndexChange, error) {
	out := make([]models.IndexChange, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, models.IndexChange{Name: sym, ChangePct: m.dayChange(ctx, sym)})
	}
	return out, nil
}

func (m *MarketSource) dayChange(ctx context.Context, symbol string) *float64 {
	series, err := m.charts.History(ctx, symbol, "5d", repository.Interval1d)
	if err != nil {
		m.log.Warn("market overview fetch failed", logger.String("symbol", symbol), logger.Error(err))
		return nil
	}
	if len(series) < 2 {
		return nil
	}
	prev := series.Prior().Last().Close
	if prev <= 0 {
		return nil
	}
	pct := (series.Last().Close - prev) / prev * 100
	return &pct
}

var _ repository.MarketSource = (*MarketSource)(nil)
