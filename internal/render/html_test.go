package render

import (
	stdhtml "html"
	"strings"
	"testing"
	"time"

	"DropWatch/internal/domain/models"
)

func sampleReport() *models.AlertReport {
	up := 0.8
	return &models.AlertReport{
		AsOf:           time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		GeneratedAt:    time.Date(2025, 6, 13, 21, 30, 0, 0, time.UTC),
		ScannedSymbols: 500,
		SkippedSymbols: 3,
		MarketOverview: []models.IndexChange{
			{Name: "SPY", ChangePct: &up},
			{Name: "QQQ"},
		},
		Sections: []models.ReportSection{
			{
				Key:   "3m_low",
				Title: "New 3-Month Lows",
				Count: 2,
				Sectors: []models.SectorGroup{
					{Sector: "Technology", Entries: []models.ReportEntry{
						{Symbol: "AAPL", Detail: "$180.10, below 3m low", Badge: 3},
						{Symbol: "MSFT", Detail: "$390.00, below 3m low", Badge: 1},
					}},
				},
			},
			{
				Key:   "daily_drop",
				Title: "Dropped 5%+ Today",
				Count: 1,
				Sectors: []models.SectorGroup{
					{Sector: "Technology", Entries: []models.ReportEntry{
						{Symbol: "AAPL", Detail: "-6.0% on the day, $180.10", Badge: 3},
					}},
				},
			},
		},
		SectorPressure:  []models.SectorPressure{{Sector: "Technology", Count: 4}},
		RepeatOffenders: []models.RepeatOffender{{Symbol: "AAPL", Count: 3, Sector: "Technology"}},
	}
}

func TestRenderReport(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	html, err := r.Render(sampleReport())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// html/template escapes "+" to "&#43;" in text context; unescape before
	// matching so assertions read as the displayed text.
	html = stdhtml.UnescapeString(html)

	for _, want := range []string{
		"2025-06-13",
		"Scanned 500 symbols (3 skipped)",
		"SPY</b>: +0.80%",
		"QQQ</b>: n/a",
		"https://finance.yahoo.com/quote/AAPL",
		"🔻 New 3-Month Lows (2)",
		"⚠️ Dropped 5%+ Today (1)",
		"⭐x3",
		"Sector Pressure",
		"3 times this week",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered report missing %q", want)
		}
	}
	// Single-section entries carry no badge.
	if strings.Contains(html, "⭐x1") {
		t.Fatalf("badge must only render at 2+")
	}
}

func TestRenderZeroAlerts(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	report := &models.AlertReport{
		AsOf:        time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		GeneratedAt: time.Now(),
		NoAlerts:    true,
	}
	html, err := r.Render(report)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "No alerts today") {
		t.Fatalf("zero-alert report must carry the explicit marker")
	}
}
