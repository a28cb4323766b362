//go:build wireinject
// +build wireinject

package di

import (
	"DropWatch/pkg/config"
	"DropWatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Data sources
		ProvideSymbolSource,
		ProvidePriceSource,
		ProvideMarketSource,
		ProvideSectorCache,
		ProvideSectorSource,

		// Persistence and fan-out
		ProvideTriggerLog,
		ProvideTriggerPublisher,
		ProvideSignalStore,

		// Use cases
		ProvideThresholds,
		ProvideScanner,
		ProvideRepeatDetector,
		ProvideAggregator,
		ProvideRenderer,
		ProvideSender,
		ProvideRunner,
		ProvideHistory,

		// HTTP and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
