package usecase

import (
	"strings"
	"testing"

	"DropWatch/internal/domain/models"
)

func thresholds() models.Thresholds {
	return models.Thresholds{DropThreshold: -5, StreakMin: 5, SectorPressureMin: 3, RepeatMin: 2}
}

func rec(symbol string, mut func(*models.SignalRecord)) *models.SignalRecord {
	r := &models.SignalRecord{Symbol: symbol, LatestPrice: 100}
	if mut != nil {
		mut(r)
	}
	return r
}

func TestAggregateLengthMismatchFatal(t *testing.T) {
	agg := NewAggregator(thresholds())
	_, err := agg.Aggregate(d(2025, 6, 13),
		[]*models.SignalRecord{rec("AAPL", nil)},
		[]string{"Technology", "Energy"},
		nil, nil)
	if err == nil {
		t.Fatalf("length mismatch must abort the run")
	}
}

func TestAggregateZeroAlertRun(t *testing.T) {
	agg := NewAggregator(thresholds())
	report, err := agg.Aggregate(d(2025, 6, 13), nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(report.Sections) != 0 {
		t.Fatalf("zero-alert report carries %d sections, want none", len(report.Sections))
	}
	if !report.NoAlerts {
		t.Fatalf("empty run must set the zero-alert marker")
	}
}

func TestAggregatePopulatedSectionsKeepCategoryOrder(t *testing.T) {
	agg := NewAggregator(thresholds())
	// One symbol hitting the 52w-low and daily-drop categories, another
	// hitting the 3m-low category: the empty categories in between must
	// vanish while the survivors keep their fixed relative order.
	records := []*models.SignalRecord{
		rec("AAPL", func(r *models.SignalRecord) {
			r.Below52wLow = true
			r.PctDropFromPrevClose = -6
		}),
		rec("XOM", func(r *models.SignalRecord) { r.Below3mLow = true }),
	}
	sectors := []string{"Technology", "Energy"}

	report, err := agg.Aggregate(d(2025, 6, 13), records, sectors, nil, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	wantOrder := []string{"3-Month", "52-Week Lows", "Today"}
	if len(report.Sections) != len(wantOrder) {
		t.Fatalf("sections = %d, want %d populated only", len(report.Sections), len(wantOrder))
	}
	for i, frag := range wantOrder {
		if !strings.Contains(report.Sections[i].Title, frag) {
			t.Fatalf("section %d = %q, want title containing %q", i, report.Sections[i].Title, frag)
		}
	}
}

func TestAggregateGroupsAndBadges(t *testing.T) {
	agg := NewAggregator(thresholds())
	records := []*models.SignalRecord{
		rec("AAPL", func(r *models.SignalRecord) {
			r.Below3mLow = true
			r.Below6mLow = true
			r.PctDropFromPrevClose = -6
		}),
		rec("XOM", func(r *models.SignalRecord) { r.Below3mLow = true }),
		rec("MSFT", nil),
	}
	sectors := []string{"Technology", "Energy", "Technology"}

	report, err := agg.Aggregate(d(2025, 6, 13), records, sectors, nil, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	threeMonth := report.Sections[0]
	if threeMonth.Count != 2 {
		t.Fatalf("3m section count = %d, want 2", threeMonth.Count)
	}
	// Sectors sort lexicographically: Energy before Technology.
	if threeMonth.Sectors[0].Sector != "Energy" || threeMonth.Sectors[1].Sector != "Technology" {
		t.Fatalf("sector order = %+v", threeMonth.Sectors)
	}

	aapl := threeMonth.Sectors[1].Entries[0]
	if aapl.Symbol != "AAPL" {
		t.Fatalf("entry = %+v", aapl)
	}
	// AAPL satisfies three predicates: 3m low, 6m low, daily drop.
	if aapl.Badge != 3 {
		t.Fatalf("badge = %d, want 3", aapl.Badge)
	}

	if report.TotalAlerts() != 4 {
		t.Fatalf("TotalAlerts = %d, want 4 (AAPL in 3 sections, XOM in 1)", report.TotalAlerts())
	}
	if report.NoAlerts {
		t.Fatalf("populated report must not carry the zero-alert marker")
	}
	if report.ScannedSymbols != 3 {
		t.Fatalf("ScannedSymbols = %d, want 3", report.ScannedSymbols)
	}
}

func TestAggregateSectorPressure(t *testing.T) {
	agg := NewAggregator(thresholds())
	// Three tech symbols each below their 3m low: Technology reaches the
	// pressure floor of 3; the lone energy name does not.
	records := []*models.SignalRecord{
		rec("A", func(r *models.SignalRecord) { r.Below3mLow = true }),
		rec("B", func(r *models.SignalRecord) { r.Below3mLow = true }),
		rec("C", func(r *models.SignalRecord) { r.Below3mLow = true }),
		rec("XOM", func(r *models.SignalRecord) { r.Below3mLow = true }),
	}
	sectors := []string{"Technology", "Technology", "Technology", "Energy"}

	report, err := agg.Aggregate(d(2025, 6, 13), records, sectors, nil, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(report.SectorPressure) != 1 {
		t.Fatalf("pressure = %+v, want Technology only", report.SectorPressure)
	}
	if p := report.SectorPressure[0]; p.Sector != "Technology" || p.Count != 3 {
		t.Fatalf("pressure = %+v", p)
	}
}

func TestAggregateRepeatOffenders(t *testing.T) {
	agg := NewAggregator(thresholds())
	records := []*models.SignalRecord{rec("AAPL", nil)}
	sectors := []string{"Technology"}
	repeats := map[string]int{
		"AAPL": 3,
		"NVDA": 2, // not scanned this run, sector unknown
		"MSFT": 1, // below the floor
	}

	report, err := agg.Aggregate(d(2025, 6, 13), records, sectors, repeats, nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(report.RepeatOffenders) != 2 {
		t.Fatalf("offenders = %+v, want 2", report.RepeatOffenders)
	}
	if report.RepeatOffenders[0].Symbol != "AAPL" || report.RepeatOffenders[0].Count != 3 {
		t.Fatalf("offenders must sort by count descending: %+v", report.RepeatOffenders)
	}
	if report.RepeatOffenders[0].Sector != "Technology" {
		t.Fatalf("scanned offender keeps its sector: %+v", report.RepeatOffenders[0])
	}
	if report.RepeatOffenders[1].Sector != "Unknown" {
		t.Fatalf("unscanned offender falls back to Unknown: %+v", report.RepeatOffenders[1])
	}
}

func TestAggregateMarketOverviewPassthrough(t *testing.T) {
	agg := NewAggregator(thresholds())
	up := 1.2
	overview := []models.IndexChange{{Name: "SPY", ChangePct: &up}, {Name: "QQQ"}}
	report, err := agg.Aggregate(d(2025, 6, 13), nil, nil, nil, overview)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(report.MarketOverview) != 2 || report.MarketOverview[0].Name != "SPY" {
		t.Fatalf("overview = %+v", report.MarketOverview)
	}
	if report.MarketOverview[1].ChangePct != nil {
		t.Fatalf("failed benchmark must stay nil")
	}
}
