package usecase

import (
	"context"
	"fmt"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/pkg/util"
)

// HistoryUseCase serves past signal records from the signal store.
type HistoryUseCase struct {
	store domrepo.SignalStore
}

func NewHistoryUseCase(store domrepo.SignalStore) *HistoryUseCase {
	return &HistoryUseCase{store: store}
}

// Enabled reports whether a store backend is configured.
func (uc *HistoryUseCase) Enabled() bool { return uc.store != nil }

type HistoryParams struct {
	Symbol string
	Days   int
}

type HistoryResult struct {
	Symbol  string                 `json:"symbol"`
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Count   int                    `json:"count"`
	Records []*models.SignalRecord `json:"records"`
}

// GetHistory returns the symbol's stored records over the last p.Days
// calendar days.
func (uc *HistoryUseCase) GetHistory(ctx context.Context, p HistoryParams) (*HistoryResult, error) {
	if uc.store == nil {
		return nil, fmt.Errorf("signal store not configured")
	}
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.Days <= 0 {
		p.Days = 30
	}

	to := util.Midnight(time.Now().UTC())
	from := to.AddDate(0, 0, -p.Days)
	records, err := uc.store.Query(ctx, util.NormalizeSymbol(p.Symbol), from, to, 0)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	return &HistoryResult{
		Symbol:  util.NormalizeSymbol(p.Symbol),
		From:    from.Format(util.DateLayout),
		To:      to.Format(util.DateLayout),
		Count:   len(records),
		Records: records,
	}, nil
}
