package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	symbolsScanned prometheus.Counter
	symbolsSkipped *prometheus.CounterVec
	alertsTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
	lastRun        prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		symbolsScanned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dropwatch_symbols_scanned_total",
				Help: "Total number of symbols evaluated by the signal engine",
			},
		),
		symbolsSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dropwatch_symbols_skipped_total",
				Help: "Total number of symbols skipped, by reason",
			},
			[]string{"reason"},
		),
		alertsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dropwatch_alerts_total",
				Help: "Total number of alert triggers by alert type",
			},
			[]string{"alert_type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dropwatch_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dropwatch_last_price",
				Help: "Last observed close price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dropwatch_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		lastRun: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dropwatch_last_run_timestamp_seconds",
				Help: "Unix time of the last completed scan",
			},
		),
	}
}

// RecordSymbolScanned records one evaluated symbol.
func (r *Recorder) RecordSymbolScanned() {
	r.symbolsScanned.Inc()
}

// RecordSymbolSkipped records one skipped symbol with its reason.
func (r *Recorder) RecordSymbolSkipped(reason string) {
	r.symbolsSkipped.WithLabelValues(reason).Inc()
}

// RecordAlert records a triggered alert by type.
func (r *Recorder) RecordAlert(alertType string) {
	r.alertsTotal.WithLabelValues(alertType).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordRunCompleted records the completion time of a scan.
func (r *Recorder) RecordRunCompleted(at time.Time) {
	r.lastRun.Set(float64(at.Unix()))
}
