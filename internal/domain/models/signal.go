package models

import "time"

// Thresholds carries the configurable alert cutoffs. Zero values are never
// used implicitly; construction goes through config defaults.
type Thresholds struct {
	DropThreshold     float64 // pct-drop cutoff, e.g. -5
	StreakMin         int     // minimum consecutive down days
	SectorPressureMin int     // minimum section memberships per sector
	RepeatMin         int     // minimum repeat count to surface an offender
}

// SignalRecord holds all per-symbol metrics derived from one run. Nullable
// fields are nil when the corresponding lookback window had no prior bars.
// Records are created fresh each run and never mutated afterwards.
type SignalRecord struct {
	Symbol      string    `json:"symbol"`
	AsOf        time.Time `json:"as_of"`
	LatestPrice float64   `json:"latest_price"`

	Low3m  *float64 `json:"low_3m"`
	High3m *float64 `json:"high_3m"`
	Low6m  *float64 `json:"low_6m"`
	High6m *float64 `json:"high_6m"`
	Low52w *float64 `json:"low_52w"`

	// High52w includes the current day, unlike the prior-only window
	// extremes above. A stock down from a peak set today still counts.
	High52w float64 `json:"high_52w"`

	PctDropFromPrevClose float64 `json:"pct_drop_from_prev_close"`
	PctDropOpenToClose   float64 `json:"pct_drop_open_to_close"`

	// DownStreak is the trailing run of consecutive down closes ending at
	// the latest bar; 0 when the latest bar is flat or up.
	DownStreak int `json:"down_streak"`

	Below3mLow         bool `json:"below_3m_low"`
	Below6mLow         bool `json:"below_6m_low"`
	Below52wLow        bool `json:"below_52w_low"`
	Below5PctPrevClose bool `json:"below_5pct_prev_close"`
	Below5PctOpenClose bool `json:"below_5pct_open_close"`

	DropFrom52wHigh *float64 `json:"drop_from_52w_high"`
}

// DeepBelow52wHigh reports whether the symbol trades at least 50% under its
// 52-week high.
func (r *SignalRecord) DeepBelow52wHigh() bool {
	return r.DropFrom52wHigh != nil && *r.DropFrom52wHigh <= -50
}

// StreakAtLeast reports whether the down streak reached min days.
func (r *SignalRecord) StreakAtLeast(min int) bool {
	return r.DownStreak >= min
}

// DroppedBeyond reports whether the day-over-day move breached threshold.
func (r *SignalRecord) DroppedBeyond(threshold float64) bool {
	return r.PctDropFromPrevClose <= threshold
}

// BadgeCount counts how many of the six report conditions the record
// satisfies. The same predicates drive section membership, so a record in
// three sections carries a badge of at least 3.
func (r *SignalRecord) BadgeCount(th Thresholds) int {
	n := 0
	for _, hit := range []bool{
		r.Below3mLow,
		r.Below6mLow,
		r.Below52wLow,
		r.StreakAtLeast(th.StreakMin),
		r.DroppedBeyond(th.DropThreshold),
		r.DeepBelow52wHigh(),
	} {
		if hit {
			n++
		}
	}
	return n
}

// Triggered returns the alert types this record fires, in enumeration order.
// These drive the daily trigger log; the 52w-high drawdown is a report-only
// section and has no log type.
func (r *SignalRecord) Triggered(th Thresholds) []AlertType {
	var out []AlertType
	if r.Below3mLow {
		out = append(out, AlertBelow3mLow)
	}
	if r.Below6mLow {
		out = append(out, AlertBelow6mLow)
	}
	if r.Below52wLow {
		out = append(out, AlertBelow52wLow)
	}
	if r.StreakAtLeast(th.StreakMin) {
		out = append(out, AlertDownStreak)
	}
	if r.DroppedBeyond(th.DropThreshold) {
		out = append(out, AlertPctDrop)
	}
	return out
}

// SectorSignal pairs a computed record with its sector for aggregation.
type SectorSignal struct {
	Record *SignalRecord
	Sector string
}
