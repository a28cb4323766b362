package yahoo

import (
	"encoding/json"
	"testing"
	"time"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "timestamp": [1750118400, 1750032000, 1750204800, 1750204800],
      "indicators": {
        "quote": [{
          "open":  [101, 100, 103, 104],
          "high":  [102, 101, 105, 106],
          "low":   [100, 99, 102, 103],
          "close": [101.5, 100.5, null, 105.5]
        }]
      }
    }],
    "error": null
  }
}`

func TestParseChart(t *testing.T) {
	var resp chartResponse
	if err := json.Unmarshal([]byte(chartPayload), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	series, err := parseChart("TEST", &resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Four raw rows: one has a null close (dropped), two share a date
	// (last wins), and input order is shuffled (sorted on output).
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(series), series)
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatalf("series not strictly ascending: %v then %v", series[i-1].Date, series[i].Date)
		}
	}
	last := series.Last()
	if last.Close != 105.5 || last.Open != 104 {
		t.Fatalf("duplicate date must keep the last bar, got %+v", last)
	}
	if h, m, s := last.Date.Clock(); h != 0 || m != 0 || s != 0 {
		t.Fatalf("bar dates must be midnight UTC, got %v", last.Date)
	}
	if last.Date.Location() != time.UTC {
		t.Fatalf("bar dates must be UTC")
	}
}

func TestParseChartAPIError(t *testing.T) {
	var resp chartResponse
	payload := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	if _, err := parseChart("GONE", &resp); err == nil {
		t.Fatalf("expected error from error payload")
	}
}

func TestParseChartEmptyResult(t *testing.T) {
	var resp chartResponse
	if err := json.Unmarshal([]byte(`{"chart":{"result":[],"error":null}}`), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	if _, err := parseChart("EMPTY", &resp); err == nil {
		t.Fatalf("expected error for empty result")
	}
}
