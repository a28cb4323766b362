package yahoo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"DropWatch/internal/domain/models"
	"DropWatch/internal/domain/repository"
	"DropWatch/pkg/config"
	"DropWatch/pkg/logger"
	"DropWatch/pkg/util"
)

// ChartSource fetches daily OHLC history from the Yahoo Finance v8 chart
// endpoint.
type ChartSource struct {
	base *serviceBase
}

func NewChartSource(cfg *config.Config, log *logger.Logger) *ChartSource {
	return &ChartSource{base: newServiceBase(cfg, log)}
}

// chartResponse mirrors the v8 chart payload. Quote arrays run parallel to
// the timestamp array and use null for missing values.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns the symbol's daily bars, ascending by date with duplicate
// dates collapsed to the last occurrence and incomplete bars dropped.
func (s *ChartSource) History(ctx context.Context, symbol string, period repository.Period, interval repository.Interval) (models.PriceSeries, error) {
	var resp chartResponse
	err := s.base.getJSON(ctx, "/v8/finance/chart/"+symbol, map[string][]string{
		"range":    {string(period)},
		"interval": {string(interval)},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return parseChart(symbol, &resp)
}

// parseChart converts a chart payload into an ordered series, collapsing
// duplicate dates and dropping bars with any null field.
func parseChart(symbol string, resp *chartResponse) (models.PriceSeries, error) {
	if e := resp.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart %s: %s (%s)", symbol, e.Description, e.Code)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	res := resp.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: no quote block", symbol)
	}
	q := res.Indicators.Quote[0]

	byDate := make(map[time.Time]models.PriceBar, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			break
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		d := util.Midnight(time.Unix(ts, 0).UTC())
		byDate[d] = models.PriceBar{
			Date:  d,
			Open:  *q.Open[i],
			High:  *q.High[i],
			Low:   *q.Low[i],
			Close: *q.Close[i],
		}
	}

	series := make(models.PriceSeries, 0, len(byDate))
	for _, bar := range byDate {
		series = append(series, bar)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

var _ repository.PriceSource = (*ChartSource)(nil)
