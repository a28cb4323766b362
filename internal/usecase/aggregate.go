package usecase

import (
	"fmt"
	"sort"
	"time"

	"DropWatch/internal/domain/models"
)

// Aggregator folds one run's signal records into the sectioned alert
// report.
type Aggregator struct {
	th models.Thresholds
}

func NewAggregator(th models.Thresholds) *Aggregator {
	return &Aggregator{th: th}
}

type sectionDef struct {
	key    string
	title  string
	hit    func(*models.SignalRecord) bool
	detail func(*models.SignalRecord) string
}

// sections returns the report sections in their fixed display order.
func (a *Aggregator) sections() []sectionDef {
	th := a.th
	return []sectionDef{
		{
			key:    "3m_low",
			title:  "New 3-Month Lows",
			hit:    func(r *models.SignalRecord) bool { return r.Below3mLow },
			detail: func(r *models.SignalRecord) string { return fmt.Sprintf("$%.2f, below 3m low", r.LatestPrice) },
		},
		{
			key:    "6m_low",
			title:  "New 6-Month Lows",
			hit:    func(r *models.SignalRecord) bool { return r.Below6mLow },
			detail: func(r *models.SignalRecord) string { return fmt.Sprintf("$%.2f, below 6m low", r.LatestPrice) },
		},
		{
			key:    "52w_low",
			title:  "New 52-Week Lows",
			hit:    func(r *models.SignalRecord) bool { return r.Below52wLow },
			detail: func(r *models.SignalRecord) string { return fmt.Sprintf("$%.2f, below 52w low", r.LatestPrice) },
		},
		{
			key:   "down_streak",
			title: fmt.Sprintf("Down %d+ Days in a Row", th.StreakMin),
			hit:   func(r *models.SignalRecord) bool { return r.StreakAtLeast(th.StreakMin) },
			detail: func(r *models.SignalRecord) string {
				return fmt.Sprintf("%d straight down days, $%.2f", r.DownStreak, r.LatestPrice)
			},
		},
		{
			key:   "daily_drop",
			title: fmt.Sprintf("Dropped %.0f%%+ Today", -th.DropThreshold),
			hit:   func(r *models.SignalRecord) bool { return r.DroppedBeyond(th.DropThreshold) },
			detail: func(r *models.SignalRecord) string {
				return fmt.Sprintf("%.1f%% on the day, $%.2f", r.PctDropFromPrevClose, r.LatestPrice)
			},
		},
		{
			key:   "52w_drawdown",
			title: "50%+ Below 52-Week High",
			hit:   func(r *models.SignalRecord) bool { return r.DeepBelow52wHigh() },
			detail: func(r *models.SignalRecord) string {
				return fmt.Sprintf("%.1f%% off the 52w high of $%.2f", *r.DropFrom52wHigh, r.High52w)
			},
		},
	}
}

// Aggregate joins records with their sectors and builds the report. The two
// slices are the parallel outputs of the scan and the sector lookup; a
// length mismatch means the pipeline lost sync and the run must abort.
func (a *Aggregator) Aggregate(asOf time.Time, records []*models.SignalRecord, sectors []string, repeats map[string]int, overview []models.IndexChange) (*models.AlertReport, error) {
	if len(records) != len(sectors) {
		return nil, fmt.Errorf("records/sectors length mismatch: %d vs %d", len(records), len(sectors))
	}

	pairs := make([]models.SectorSignal, len(records))
	sectorOf := make(map[string]string, len(records))
	for i, r := range records {
		pairs[i] = models.SectorSignal{Record: r, Sector: sectors[i]}
		sectorOf[r.Symbol] = sectors[i]
	}

	report := &models.AlertReport{
		AsOf:           asOf,
		GeneratedAt:    time.Now().UTC(),
		ScannedSymbols: len(records),
		MarketOverview: overview,
	}

	pressure := make(map[string]int)
	for _, def := range a.sections() {
		section := models.ReportSection{Key: def.key, Title: def.title}
		bySector := make(map[string][]models.ReportEntry)
		for _, p := range pairs {
			if !def.hit(p.Record) {
				continue
			}
			bySector[p.Sector] = append(bySector[p.Sector], models.ReportEntry{
				Symbol: p.Record.Symbol,
				Detail: def.detail(p.Record),
				Badge:  p.Record.BadgeCount(a.th),
			})
			section.Count++
			pressure[p.Sector]++
		}

		// Empty categories stay out of the report; a zero-alert run carries
		// no sections at all, only the NoAlerts marker.
		if section.Count == 0 {
			continue
		}

		names := make([]string, 0, len(bySector))
		for name := range bySector {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			section.Sectors = append(section.Sectors, models.SectorGroup{
				Sector:  name,
				Entries: bySector[name],
			})
		}
		report.Sections = append(report.Sections, section)
	}

	report.SectorPressure = rankSectorPressure(pressure, a.th.SectorPressureMin)
	report.RepeatOffenders = rankRepeatOffenders(repeats, sectorOf, a.th.RepeatMin)
	report.NoAlerts = report.TotalAlerts() == 0
	return report, nil
}

func rankSectorPressure(pressure map[string]int, min int) []models.SectorPressure {
	var out []models.SectorPressure
	for sector, n := range pressure {
		if n >= min {
			out = append(out, models.SectorPressure{Sector: sector, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

func rankRepeatOffenders(repeats map[string]int, sectorOf map[string]string, min int) []models.RepeatOffender {
	var out []models.RepeatOffender
	for symbol, n := range repeats {
		if n < min {
			continue
		}
		sector, ok := sectorOf[symbol]
		if !ok {
			sector = "Unknown"
		}
		out = append(out, models.RepeatOffender{Symbol: symbol, Count: n, Sector: sector})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
