package usecase

import (
	"context"
	"fmt"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/pkg/util"
)

// RepeatDetector counts how often each symbol fired a trigger across the
// recent business-day window of the daily logs.
type RepeatDetector struct {
	reader domrepo.TriggerLogReader
}

func NewRepeatDetector(reader domrepo.TriggerLogReader) *RepeatDetector {
	return &RepeatDetector{reader: reader}
}

// CountRepeats returns symbol -> distinct trigger days for alertType within
// the last businessDaysBack business days ending at asOf. A weekday asOf
// closes the window on asOf itself; a weekend asOf closes it on the prior
// business day. Duplicate rows for one symbol on one day count once.
func (d *RepeatDetector) CountRepeats(ctx context.Context, alertType models.AlertType, asOf time.Time, businessDaysBack int) (map[string]int, error) {
	if businessDaysBack < 1 {
		return nil, fmt.Errorf("businessDaysBack must be >= 1")
	}

	start, end := util.BusinessWindow(asOf, businessDaysBack)
	entries, err := d.reader.ReadWindow(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("read trigger window: %w", err)
	}

	type daybreak struct {
		symbol string
		day    string
	}
	seen := make(map[daybreak]struct{})
	counts := make(map[string]int)
	for _, e := range entries {
		if e.AlertType != alertType || e.Symbol == "" {
			continue
		}
		k := daybreak{symbol: e.Symbol, day: e.Date.Format(util.DateLayout)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		counts[e.Symbol]++
	}
	return counts, nil
}
