package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/pkg/logger"
	"DropWatch/pkg/util"
)

// ErrRunInProgress is returned when a run is requested while another one
// holds the pipeline.
var ErrRunInProgress = errors.New("scan run already in progress")

// ReportRenderer turns a report into an HTML document.
type ReportRenderer interface {
	Render(report *models.AlertReport) (string, error)
}

// ReportSender delivers the rendered report.
type ReportSender interface {
	Send(subject, htmlBody string) error
}

// Runner drives one end-to-end daily run: scan, trigger log, repeat scan,
// aggregation, delivery. Optional backends (publisher, store, sender) may
// be nil; their absence or failure degrades the run, never aborts it. Only
// the aggregation contract violation is fatal.
type Runner struct {
	scanner   *Scanner
	repeats   *RepeatDetector
	agg       *Aggregator
	triggers  domrepo.TriggerLogWriter
	publisher domrepo.TriggerPublisher
	store     domrepo.SignalStore
	market    domrepo.MarketSource
	renderer  ReportRenderer
	sender    ReportSender
	metrics   domrepo.Metrics
	log       *logger.Logger

	th       models.Thresholds
	daysBack int
	indexes  []string
	subject  string
	now      func() time.Time

	runMu sync.Mutex

	mu          sync.RWMutex
	lastReport  *models.AlertReport
	lastRecords []*models.SignalRecord
}

type RunnerParams struct {
	Scanner    *Scanner
	Repeats    *RepeatDetector
	Aggregator *Aggregator
	Triggers   domrepo.TriggerLogWriter
	Publisher  domrepo.TriggerPublisher
	Store      domrepo.SignalStore
	Market     domrepo.MarketSource
	Renderer   ReportRenderer
	Sender     ReportSender
	Metrics    domrepo.Metrics
	Logger     *logger.Logger

	Thresholds models.Thresholds
	DaysBack   int
	Indexes    []string
	Subject    string
}

func NewRunner(p RunnerParams) *Runner {
	return &Runner{
		scanner:   p.Scanner,
		repeats:   p.Repeats,
		agg:       p.Aggregator,
		triggers:  p.Triggers,
		publisher: p.Publisher,
		store:     p.Store,
		market:    p.Market,
		renderer:  p.Renderer,
		sender:    p.Sender,
		metrics:   p.Metrics,
		log:       p.Logger,
		th:        p.Thresholds,
		daysBack:  p.DaysBack,
		indexes:   p.Indexes,
		subject:   p.Subject,
		now:       time.Now,
	}
}

// Run executes one full pipeline pass. With dryRun set, nothing is written,
// published, stored or emailed; the report is computed and returned only.
func (r *Runner) Run(ctx context.Context, dryRun bool) (*models.AlertReport, error) {
	if !r.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer r.runMu.Unlock()

	start := time.Now()
	asOf := util.Midnight(r.now().UTC())
	r.log.Info("run started",
		logger.String("as_of", asOf.Format(util.DateLayout)),
		logger.Bool("dry_run", dryRun))

	scan, err := r.scanner.Scan(ctx, asOf)
	if err != nil {
		r.metrics.RecordError("scan")
		return nil, fmt.Errorf("scan: %w", err)
	}

	entries, events := r.collectTriggers(scan, asOf)
	if !dryRun {
		r.persistTriggers(ctx, asOf, entries, events)
		r.persistSignals(ctx, scan.Records)
	}

	repeats := r.countRepeats(ctx, asOf)
	overview := r.marketOverview(ctx)

	report, err := r.agg.Aggregate(asOf, scan.Records, scan.Sectors, repeats, overview)
	if err != nil {
		r.metrics.RecordError("aggregate")
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	report.SkippedSymbols = scan.Skipped

	if !dryRun {
		r.deliver(report)
	}

	r.mu.Lock()
	r.lastReport = report
	r.lastRecords = scan.Records
	r.mu.Unlock()

	r.metrics.RecordLatency("run", time.Since(start).Seconds())
	r.metrics.RecordRunCompleted(time.Now())
	r.log.Info("run finished",
		logger.Int("alerts", report.TotalAlerts()),
		logger.Int("scanned", report.ScannedSymbols),
		logger.Int("skipped", report.SkippedSymbols),
		logger.Duration("duration_ms", time.Since(start)))
	return report, nil
}

func (r *Runner) collectTriggers(scan *ScanResult, asOf time.Time) ([]models.TriggerLogEntry, []models.TriggerEvent) {
	var entries []models.TriggerLogEntry
	var events []models.TriggerEvent
	now := time.Now().UTC()
	for i, rec := range scan.Records {
		for _, at := range rec.Triggered(r.th) {
			entry := models.TriggerLogEntry{Symbol: rec.Symbol, Date: asOf, AlertType: at}
			entries = append(entries, entry)
			events = append(events, models.TriggerEvent{
				TriggerLogEntry: entry,
				Price:           rec.LatestPrice,
				Sector:          scan.Sectors[i],
				EmittedAt:       now,
			})
			r.metrics.RecordAlert(string(at))
		}
	}
	return entries, events
}

func (r *Runner) persistTriggers(ctx context.Context, asOf time.Time, entries []models.TriggerLogEntry, events []models.TriggerEvent) {
	if err := r.triggers.Append(ctx, asOf, entries); err != nil {
		r.log.Error("trigger log write failed", logger.Error(err))
		r.metrics.RecordError("trigger_log")
	}
	if r.publisher != nil && len(events) > 0 {
		if err := r.publisher.Publish(ctx, events); err != nil {
			r.log.Error("trigger publish failed", logger.Error(err))
			r.metrics.RecordError("trigger_publish")
		}
	}
}

func (r *Runner) persistSignals(ctx context.Context, records []*models.SignalRecord) {
	if r.store == nil || len(records) == 0 {
		return
	}
	if err := r.store.StoreBatch(ctx, records); err != nil {
		r.log.Warn("signal store write failed", logger.Error(err))
		r.metrics.RecordError("signal_store")
	}
}

func (r *Runner) countRepeats(ctx context.Context, asOf time.Time) map[string]int {
	repeats, err := r.repeats.CountRepeats(ctx, models.AlertPctDrop, asOf, r.daysBack)
	if err != nil {
		r.log.Warn("repeat scan failed", logger.Error(err))
		r.metrics.RecordError("repeat_scan")
		return nil
	}
	return repeats
}

func (r *Runner) marketOverview(ctx context.Context) []models.IndexChange {
	if r.market == nil || len(r.indexes) == 0 {
		return nil
	}
	overview, err := r.market.Overview(ctx, r.indexes)
	if err != nil {
		r.log.Warn("market overview failed", logger.Error(err))
		return nil
	}
	return overview
}

func (r *Runner) deliver(report *models.AlertReport) {
	if r.renderer == nil || r.sender == nil {
		return
	}
	html, err := r.renderer.Render(report)
	if err != nil {
		r.log.Error("report render failed", logger.Error(err))
		r.metrics.RecordError("render")
		return
	}
	subject := fmt.Sprintf("%s - %s", r.subject, report.AsOf.Format(util.DateLayout))
	if err := r.sender.Send(subject, html); err != nil {
		r.log.Error("report delivery failed", logger.Error(err))
		r.metrics.RecordError("email")
	}
}

// LatestReport returns the most recent run's report, if any.
func (r *Runner) LatestReport() (*models.AlertReport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastReport, r.lastReport != nil
}

// LatestRecords returns the most recent run's signal records.
func (r *Runner) LatestRecords() []*models.SignalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRecords
}
