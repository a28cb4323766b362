package models

import "time"

// PriceBar represents one daily OHLC record.
type PriceBar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// PriceSeries is the daily history for one symbol, ordered ascending by date
// with no duplicate dates.
type PriceSeries []PriceBar

// Last returns the most recent bar. Callers must check Len first.
func (s PriceSeries) Last() PriceBar {
	return s[len(s)-1]
}

// Prior returns all bars except the most recent one.
func (s PriceSeries) Prior() PriceSeries {
	if len(s) == 0 {
		return nil
	}
	return s[:len(s)-1]
}

// Since filters bars with date >= cutoff.
func (s PriceSeries) Since(cutoff time.Time) PriceSeries {
	out := make(PriceSeries, 0, len(s))
	for _, b := range s {
		if !b.Date.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

// MinLow returns the lowest Low over the series, or nil when empty.
func (s PriceSeries) MinLow() *float64 {
	if len(s) == 0 {
		return nil
	}
	v := s[0].Low
	for _, b := range s[1:] {
		if b.Low < v {
			v = b.Low
		}
	}
	return &v
}

// MaxHigh returns the highest High over the series, or nil when empty.
func (s PriceSeries) MaxHigh() *float64 {
	if len(s) == 0 {
		return nil
	}
	v := s[0].High
	for _, b := range s[1:] {
		if b.High > v {
			v = b.High
		}
	}
	return &v
}
