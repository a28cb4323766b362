package signal

import (
	"fmt"
	"time"

	"DropWatch/internal/domain/models"
)

// epsilon widens the below-low comparisons so a close landing exactly on a
// window low still counts as a breach despite float rounding.
const epsilon = 1e-9

// Lookback windows in calendar days. The extremes windows cover prior bars
// only; the 52-week high additionally includes the current day.
const (
	window3m  = 90
	window6m  = 180
	window52w = 365
)

// Engine derives a SignalRecord from one symbol's daily history.
type Engine struct {
	dropThreshold float64
}

// NewEngine creates a signal engine. dropThreshold is the signed pct cutoff
// for the day-over-day and intraday drop flags, e.g. -5.
func NewEngine(dropThreshold float64) *Engine {
	return &Engine{dropThreshold: dropThreshold}
}

// Compute evaluates the latest bar of series against its rolling windows.
// Series must be ascending by date with unique dates. The windows anchor to
// the last bar's date; asOf only stamps the record. Returns nil,nil when
// fewer than two bars exist; a record can't be scored without a prior close.
func (e *Engine) Compute(series models.PriceSeries, asOf time.Time) (*models.SignalRecord, error) {
	if len(series) < 2 {
		return nil, nil
	}

	latest := series.Last()
	prior := series.Prior()
	if latest.Close <= 0 {
		return nil, fmt.Errorf("non-positive close %.4f on %s", latest.Close, latest.Date.Format("2006-01-02"))
	}

	rec := &models.SignalRecord{
		AsOf:        asOf,
		LatestPrice: latest.Close,
	}

	// Windows anchor to the last bar's date, not the run date: a weekend or
	// holiday run must not shift the cutoffs past boundary bars.
	anchor := latest.Date
	rec.Low3m = prior.Since(anchor.AddDate(0, 0, -window3m)).MinLow()
	rec.High3m = prior.Since(anchor.AddDate(0, 0, -window3m)).MaxHigh()
	rec.Low6m = prior.Since(anchor.AddDate(0, 0, -window6m)).MinLow()
	rec.High6m = prior.Since(anchor.AddDate(0, 0, -window6m)).MaxHigh()
	rec.Low52w = prior.Since(anchor.AddDate(0, 0, -window52w)).MinLow()

	// The year window for the high spans the full series including today,
	// so a drawdown measured from a peak set this session is visible.
	if h := series.Since(anchor.AddDate(0, 0, -window52w)).MaxHigh(); h != nil {
		rec.High52w = *h
	}

	prevClose := prior.Last().Close
	if prevClose > 0 {
		rec.PctDropFromPrevClose = (latest.Close - prevClose) / prevClose * 100
	}
	if latest.Open > 0 {
		rec.PctDropOpenToClose = (latest.Close - latest.Open) / latest.Open * 100
	}

	rec.DownStreak = trailingDownStreak(series)

	rec.Below3mLow = belowLow(latest.Close, rec.Low3m)
	rec.Below6mLow = belowLow(latest.Close, rec.Low6m)
	rec.Below52wLow = belowLow(latest.Close, rec.Low52w)
	rec.Below5PctPrevClose = rec.PctDropFromPrevClose <= e.dropThreshold
	rec.Below5PctOpenClose = rec.PctDropOpenToClose <= e.dropThreshold

	if rec.High52w > 0 {
		d := (latest.Close - rec.High52w) / rec.High52w * 100
		rec.DropFrom52wHigh = &d
	}

	return rec, nil
}

func belowLow(price float64, low *float64) bool {
	return low != nil && price <= *low+epsilon
}

// trailingDownStreak counts consecutive down closes ending at the latest
// bar. A flat or up latest close yields 0.
func trailingDownStreak(series models.PriceSeries) int {
	n := 0
	for i := len(series) - 1; i > 0; i-- {
		if series[i].Close < series[i-1].Close {
			n++
		} else {
			break
		}
	}
	return n
}
