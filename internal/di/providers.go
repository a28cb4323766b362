package di

import (
	"context"
	"fmt"
	"time"

	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/internal/handler/api"
	"DropWatch/internal/render"
	internalrepo "DropWatch/internal/repository"
	"DropWatch/internal/services/mailer"
	"DropWatch/internal/services/scraper"
	"DropWatch/internal/services/signal"
	"DropWatch/internal/services/yahoo"
	"DropWatch/internal/usecase"
	"DropWatch/pkg/cache"
	pkgch "DropWatch/pkg/clickhouse"
	"DropWatch/pkg/config"
	xhttp "DropWatch/pkg/http"
	pkgkafka "DropWatch/pkg/kafka"
	applogger "DropWatch/pkg/logger"
	"DropWatch/pkg/metrics"
	"DropWatch/pkg/server"

	"DropWatch/internal/domain/models"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideSymbolSource creates the list-page scraper.
func ProvideSymbolSource(cfg *config.Config, l *applogger.Logger) domrepo.SymbolSource {
	return scraper.NewStockListScraper(cfg, l)
}

// ProvidePriceSource creates the Yahoo chart client.
func ProvidePriceSource(cfg *config.Config, l *applogger.Logger) domrepo.PriceSource {
	return yahoo.NewChartSource(cfg, l)
}

// ProvideMarketSource creates the benchmark overview client.
func ProvideMarketSource(cfg *config.Config, l *applogger.Logger) domrepo.MarketSource {
	return yahoo.NewMarketSource(cfg, l)
}

// ProvideSectorCache picks the cache backend: Redis when configured, an
// in-process LRU otherwise.
func ProvideSectorCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
			cache.WithRedisPrefix(cfg.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideSectorSource wraps the profile lookup with the cache decorator.
func ProvideSectorSource(cfg *config.Config, l *applogger.Logger, c cache.Service) domrepo.SectorSource {
	return internalrepo.NewCachedSectorSource(
		yahoo.NewProfileSource(cfg, l),
		c,
		cfg.Sectors.CacheTTL,
		cfg.Sectors.Delay,
		l,
	)
}

// ProvideTriggerLog creates the CSV partition store.
func ProvideTriggerLog(cfg *config.Config, l *applogger.Logger) (*internalrepo.CSVTriggerLog, error) {
	return internalrepo.NewCSVTriggerLog(cfg.TriggerLog.Dir, l)
}

// ProvideTriggerPublisher creates the Kafka fan-out when enabled; a nil
// publisher disables streaming without touching the CSV log.
func ProvideTriggerPublisher(cfg *config.Config) (domrepo.TriggerPublisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaTriggerPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSignalStore creates the ClickHouse history store when enabled.
func ProvideSignalStore(cfg *config.Config, l *applogger.Logger) (domrepo.SignalStore, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	store := internalrepo.NewCHSignalStore(client)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideThresholds maps the alert config block into the domain type.
func ProvideThresholds(cfg *config.Config) models.Thresholds {
	return models.Thresholds{
		DropThreshold:     cfg.Alerts.DropThreshold,
		StreakMin:         cfg.Alerts.StreakMin,
		SectorPressureMin: cfg.Alerts.SectorPressureMin,
		RepeatMin:         cfg.Alerts.RepeatMin,
	}
}

// ProvideScanner assembles the universe scanner.
func ProvideScanner(
	cfg *config.Config,
	l *applogger.Logger,
	symbols domrepo.SymbolSource,
	prices domrepo.PriceSource,
	sectors domrepo.SectorSource,
	m domrepo.Metrics,
) *usecase.Scanner {
	return usecase.NewScanner(usecase.ScannerParams{
		Symbols:     symbols,
		Prices:      prices,
		Sectors:     sectors,
		Engine:      signal.NewEngine(cfg.Alerts.DropThreshold),
		Metrics:     m,
		Logger:      l,
		Period:      cfg.Prices.Period,
		Interval:    cfg.Prices.Interval,
		Concurrency: cfg.Prices.MaxConcurrency,
		RatePerSec:  cfg.Prices.RatePerSec,
	})
}

// ProvideRepeatDetector creates the repeat scanner over the CSV log.
func ProvideRepeatDetector(triggers *internalrepo.CSVTriggerLog) *usecase.RepeatDetector {
	return usecase.NewRepeatDetector(triggers)
}

// ProvideAggregator creates the report aggregator.
func ProvideAggregator(th models.Thresholds) *usecase.Aggregator {
	return usecase.NewAggregator(th)
}

// ProvideRenderer creates the HTML report renderer.
func ProvideRenderer() (usecase.ReportRenderer, error) {
	return render.NewHTMLRenderer()
}

// ProvideSender creates the SMTP sender when email is enabled.
func ProvideSender(cfg *config.Config, l *applogger.Logger) usecase.ReportSender {
	if !cfg.Email.Enabled {
		return nil
	}
	return mailer.NewMailer(cfg, l)
}

// ProvideRunner assembles the end-to-end pipeline.
func ProvideRunner(
	cfg *config.Config,
	l *applogger.Logger,
	scanner *usecase.Scanner,
	repeats *usecase.RepeatDetector,
	agg *usecase.Aggregator,
	triggers *internalrepo.CSVTriggerLog,
	publisher domrepo.TriggerPublisher,
	store domrepo.SignalStore,
	market domrepo.MarketSource,
	renderer usecase.ReportRenderer,
	sender usecase.ReportSender,
	m domrepo.Metrics,
	th models.Thresholds,
) *usecase.Runner {
	return usecase.NewRunner(usecase.RunnerParams{
		Scanner:    scanner,
		Repeats:    repeats,
		Aggregator: agg,
		Triggers:   triggers,
		Publisher:  publisher,
		Store:      store,
		Market:     market,
		Renderer:   renderer,
		Sender:     sender,
		Metrics:    m,
		Logger:     l,
		Thresholds: th,
		DaysBack:   cfg.Alerts.DaysBack,
		Indexes:    cfg.Prices.Indexes,
		Subject:    cfg.Email.Subject,
	})
}

// ProvideHistory creates the history usecase (store may be nil).
func ProvideHistory(store domrepo.SignalStore) *usecase.HistoryUseCase {
	return usecase.NewHistoryUseCase(store)
}

// ProvideHTTPHandler creates the Echo handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	runner *usecase.Runner,
	repeats *usecase.RepeatDetector,
	history *usecase.HistoryUseCase,
) xhttp.Handler {
	return api.NewReportEchoHandler(l, runner, repeats, history)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	runner *usecase.Runner,
	handler xhttp.Handler,
	publisher domrepo.TriggerPublisher,
	store domrepo.SignalStore,
	sectorCache cache.Service,
) *server.App {
	return server.New(cfg, l, runner, handler, publisher, store, sectorCache)
}
