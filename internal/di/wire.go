//go:build wireinject
// +build wireinject

package di

import (
	"RosterPulse/pkg/config"
	"RosterPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Upstream source and directory
		ProvideTransactionSource,
		ProvideDirectoryStore,
		ProvideDirectoryProvider,

		// Engine
		ProvideTransactionCollector,
		ProvideSummaryBuilder,

		// Infrastructure clients and sinks
		ProvideClickHouseClient,
		ProvideSummaryStore,
		ProvideKafkaProducer,
		ProvideSummaryPublisher,
		ProvideKafkaConsumer,

		// Batch path
		ProvideRefreshUsecase,
		ProvideRefreshHandler,
		ProvideRefreshQueue,

		// Live path
		ProvideLiveCache,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
