//go:build wireinject
// +build wireinject

package di

import (
	"BidSnapper/pkg/config"
	"BidSnapper/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideFeatureStorage,
		ProvideDealPublisher,
		ProvideDetectStream,
		ProvideFeatureStore,

		// Core services
		ProvideClassifier,
		ProvideRecommendEngine,
		ProvideAdvisor,

		// Use cases
		ProvideDealProcessor,
		ProvideDealCollector,
		ProvideKafkaDealsHandler,
		ProvideDatasetUseCase,
		ProvidePreprocessUseCase,
		ProvideJobQueue,

		// HTTP API
		ProvideEchoHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
