package models

import "time"

// AlertType identifies one trigger condition as written to the daily log.
// The streak and drop tags are fixed even when the configured thresholds
// differ, so historical logs stay comparable across config changes.
type AlertType string

const (
	AlertBelow3mLow  AlertType = "below_3m_low"
	AlertBelow6mLow  AlertType = "below_6m_low"
	AlertBelow52wLow AlertType = "below_52w_low"
	AlertDownStreak  AlertType = "down_streak_5plus"
	AlertPctDrop     AlertType = "pct_drop_5plus"
)

// AllAlertTypes lists the loggable trigger conditions in canonical order.
var AllAlertTypes = []AlertType{
	AlertBelow3mLow,
	AlertBelow6mLow,
	AlertBelow52wLow,
	AlertDownStreak,
	AlertPctDrop,
}

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	for _, k := range AllAlertTypes {
		if t == k {
			return true
		}
	}
	return false
}

// TriggerLogEntry is one row of a daily trigger log partition.
type TriggerLogEntry struct {
	Symbol    string    `json:"symbol"`
	Date      time.Time `json:"date"`
	AlertType AlertType `json:"alert_type"`
}

// TriggerEvent is the message shape published to the event stream. It
// enriches the log row with price and sector context plus the emission
// timestamp so downstream consumers can dedupe reruns.
type TriggerEvent struct {
	TriggerLogEntry
	Price     float64   `json:"price"`
	Sector    string    `json:"sector"`
	EmittedAt time.Time `json:"emitted_at"`
}
