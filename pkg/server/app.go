package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	domrepo "DropWatch/internal/domain/repository"
	"DropWatch/internal/usecase"
	"DropWatch/pkg/cache"
	"DropWatch/pkg/config"
	xhttp "DropWatch/pkg/http"
	applogger "DropWatch/pkg/logger"
)

// App encapsulates the application lifecycle: the cron schedule, the HTTP
// API and graceful teardown of the optional backends.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	runner    *usecase.Runner
	handler   xhttp.Handler
	publisher domrepo.TriggerPublisher
	store     domrepo.SignalStore
	cache     cache.Service

	httpServer *xhttp.Server
	cron       *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	runner *usecase.Runner,
	handler xhttp.Handler,
	publisher domrepo.TriggerPublisher,
	store domrepo.SignalStore,
	sectorCache cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		runner:    runner,
		handler:   handler,
		publisher: publisher,
		store:     store,
		cache:     sectorCache,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	if spec := a.cfg.Schedule.Spec; spec != "" {
		a.cron = cron.New(cron.WithSeconds())
		if _, err := a.cron.AddFunc(spec, func() { a.runOnce(ctx) }); err != nil {
			a.log.Error("invalid schedule spec", applogger.String("spec", spec), applogger.Error(err))
			return err
		}
		a.cron.Start()
		a.log.Info("scheduler started", applogger.String("spec", spec))
	}

	if a.cfg.Schedule.RunOnStart {
		go a.runOnce(ctx)
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) runOnce(ctx context.Context) {
	if _, err := a.runner.Run(ctx, false); err != nil {
		a.log.Error("scheduled run failed", applogger.Error(err))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.cron != nil {
		// Let an in-flight scheduled run finish within the shutdown window.
		select {
		case <-a.cron.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("signal store close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
