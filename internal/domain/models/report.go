package models

import "time"

// ReportEntry is one symbol line inside a sector group.
type ReportEntry struct {
	Symbol string `json:"symbol"`
	Detail string `json:"detail"`
	// Badge is the number of sections this symbol appears in across the
	// whole report, rendered next to the symbol when >= 2.
	Badge int `json:"badge"`
}

// SectorGroup holds a sector's entries within one report section. Entries
// keep scan order; sectors sort lexicographically within the section.
type SectorGroup struct {
	Sector  string        `json:"sector"`
	Entries []ReportEntry `json:"entries"`
}

// ReportSection is one alert category of the daily report. Only populated
// sections appear, in the fixed category order; Key identifies the category
// independently of the threshold-derived title.
type ReportSection struct {
	Key     string        `json:"key"`
	Title   string        `json:"title"`
	Count   int           `json:"count"`
	Sectors []SectorGroup `json:"sectors"`
}

// SectorPressure marks a sector whose symbols appear across many sections.
type SectorPressure struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// RepeatOffender is a symbol that fired the large-drop trigger on multiple
// business days within the lookback window.
type RepeatOffender struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
	Sector string `json:"sector"`
}

// IndexChange is a market benchmark's day-over-day move. ChangePct is nil
// when the quote could not be fetched.
type IndexChange struct {
	Name      string   `json:"name"`
	ChangePct *float64 `json:"change_pct"`
}

// AlertReport is the full aggregated output of one run.
type AlertReport struct {
	AsOf            time.Time        `json:"as_of"`
	GeneratedAt     time.Time        `json:"generated_at"`
	ScannedSymbols  int              `json:"scanned_symbols"`
	SkippedSymbols  int              `json:"skipped_symbols"`
	MarketOverview  []IndexChange    `json:"market_overview"`
	Sections        []ReportSection  `json:"sections"`
	SectorPressure  []SectorPressure `json:"sector_pressure"`
	RepeatOffenders []RepeatOffender `json:"repeat_offenders"`
	NoAlerts        bool             `json:"no_alerts"`
}

// TotalAlerts sums section membership across the report. A symbol in three
// sections contributes 3.
func (r *AlertReport) TotalAlerts() int {
	n := 0
	for _, s := range r.Sections {
		n += s.Count
	}
	return n
}
