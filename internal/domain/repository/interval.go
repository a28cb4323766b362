package repository

// Period is a chart lookback range as understood by the price source.
type Period string

// Interval is a chart bar granularity.
type Interval string

const (
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"

	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
)

// IsValidPeriod returns true if p is a supported lookback range.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period6mo, Period1y, Period2y:
		return true
	default:
		return false
	}
}

// IsValidInterval returns true if iv is a supported granularity.
func IsValidInterval(iv Interval) bool {
	switch iv {
	case Interval1d, Interval1wk:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default lookback range. One year of dailies
// covers every rolling window the signal engine computes.
func DefaultPeriod() Period { return Period1y }

// DefaultInterval returns the default bar granularity.
func DefaultInterval() Interval { return Interval1d }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// NormalizeInterval converts raw string to a valid interval (or default).
func NormalizeInterval(s string) Interval {
	if s == "" {
		return DefaultInterval()
	}
	iv := Interval(s)
	if IsValidInterval(iv) {
		return iv
	}
	return DefaultInterval()
}
