package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"BidSnapper/internal/domain/repository"
	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/internal/handler/api"
	mid "BidSnapper/internal/middleware"
	internalrepo "BidSnapper/internal/repository"
	icache "BidSnapper/internal/service/cache"
	"BidSnapper/internal/service/detect"
	"BidSnapper/internal/services/classifier"
	"BidSnapper/internal/services/conventions"
	"BidSnapper/internal/services/search"
	"BidSnapper/internal/usecase"
	pkgcache "BidSnapper/pkg/cache"
	pkgch "BidSnapper/pkg/clickhouse"
	"BidSnapper/pkg/config"
	pkgkafka "BidSnapper/pkg/kafka"
	applogger "BidSnapper/pkg/logger"
	"BidSnapper/pkg/metrics"
	"BidSnapper/pkg/queue"
	"BidSnapper/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS bidsnapper",
		"CREATE TABLE IF NOT EXISTS " + internalrepo.FeatureRowsTable +
			" (board_id String, extracted DateTime, schema_version UInt32, feature_values Array(Float64), contract String)" +
			" ENGINE=MergeTree ORDER BY (extracted, board_id)",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideFeatureStorage creates ClickHouse storage repository.
func ProvideFeatureStorage(chClient *pkgch.Client) repository.Storage {
	return internalrepo.NewClickHouseStorage(chClient.DB(), internalrepo.FeatureRowsTable)
}

// ProvideDealPublisher creates Kafka publisher repository.
func ProvideDealPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaDealsHandler registers the handler for the deals topic.
func ProvideKafkaDealsHandler(store repository.Storage, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaDealsHandler {
	return usecase.NewKafkaDealsHandler(cfg.Kafka.Topic, store, metrics)
}

// ProvideDetectStream creates the detection-feed WebSocket stream.
func ProvideDetectStream(cfg *config.Config) repository.DealStream {
	return detect.New(
		cfg.Detect.APIKey,
		cfg.Detect.WebSocketURL,
		cfg.Detect.Tables,
		cfg.Detect.ReconnectDelay,
		cfg.Detect.PingInterval,
	)
}

// ProvideDealProcessor creates the deal processor use case.
func ProvideDealProcessor(
	pub repository.Publisher,
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.DealProcessor {
	return usecase.NewDealProcessor(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideDealCollector creates the deal collector use case.
// Returns nil when the detection feed is disabled.
func ProvideDealCollector(
	cfg *config.Config,
	stream repository.DealStream,
	processor *usecase.DealProcessor,
	metrics repository.Metrics,
) *usecase.DealCollector {
	if !cfg.Detect.Enabled {
		return nil
	}
	// Build middleware pipeline between WebSocket and the backend
	pipe := mid.NewRealtimePipeline(processor, metrics,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewDealCollector(stream, processor, metrics, pipe)
}

// ProvideClassifier builds the contract classifier chain: HTTP service when
// configured, local heuristic otherwise, with an optional prediction cache.
func ProvideClassifier(cfg *config.Config) domsvc.ContractClassifier {
	var predictor domsvc.ContractClassifier = classifier.NewLocalPredictor()
	if cfg.Classifier.ServiceURL != "" {
		predictor = classifier.NewHTTPPredictor(cfg)
	}

	var store icache.BytesCache
	if cfg.Classifier.Redis.Enabled {
		store = icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Classifier.Redis.Addr,
			Password: cfg.Classifier.Redis.Password,
			DB:       cfg.Classifier.Redis.DB,
		})
	} else {
		store = icache.NewTTLCache()
	}
	return classifier.NewCachedPredictor(predictor, store, cfg.Classifier.CacheTTL.Prediction)
}

// ProvideRecommendEngine creates the recommendation engine.
func ProvideRecommendEngine(cls domsvc.ContractClassifier, cfg *config.Config, l *applogger.Logger) domsvc.Recommender {
	return usecase.NewRecommendEngine(cls, search.Config{
		Generations: cfg.Search.Generations,
		Population:  cfg.Search.Population,
		Seed:        cfg.Search.Seed,
		FrontLimit:  cfg.Search.FrontLimit,
	}, l)
}

// ProvideAdvisor creates the bidding convention advisor behind a cache:
// layered memory+Redis when Redis is configured, in-process memory otherwise.
func ProvideAdvisor(cfg *config.Config) domsvc.ConventionAdvisor {
	var store pkgcache.Service = pkgcache.NewMemoryCache()
	if cfg.Classifier.Redis.Enabled {
		host, port := splitHostPort(cfg.Classifier.Redis.Addr)
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(host),
			pkgcache.WithRedisPort(port),
			pkgcache.WithRedisPassword(cfg.Classifier.Redis.Password),
			pkgcache.WithRedisDB(cfg.Classifier.Redis.DB),
		)
		if err == nil {
			store = pkgcache.NewLayeredCache(rc)
		}
	}
	return conventions.NewCachedAdvisor(conventions.NewAdvisor(), store, cfg.Classifier.CacheTTL.Convention)
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 6379
	}
	return host, port
}

// ProvideFeatureStore creates the ClickHouse feature row reader.
func ProvideFeatureStore(chClient *pkgch.Client, l *applogger.Logger) repository.FeatureStore {
	store := internalrepo.NewCHFeatureStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideDatasetUseCase creates the dataset read use case.
func ProvideDatasetUseCase(store repository.FeatureStore) *usecase.DatasetUseCase {
	return usecase.NewDatasetUseCase(store)
}

// ProvidePreprocessUseCase creates the dataset preprocessing use case.
func ProvidePreprocessUseCase(store repository.Storage, metrics repository.Metrics, l *applogger.Logger) *usecase.PreprocessUseCase {
	return usecase.NewPreprocessUseCase(store, metrics, l)
}

// ProvideJobQueue creates the Redis-backed job queue with the preprocessing
// job registered. Returns nil when Redis is disabled.
func ProvideJobQueue(cfg *config.Config, l *applogger.Logger, pre *usecase.PreprocessUseCase) *queue.RedisQueue {
	if !cfg.Classifier.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Classifier.Redis.Addr,
		Password: cfg.Classifier.Redis.Password,
		DB:       cfg.Classifier.Redis.DB,
	})
	q := queue.NewRedisQueue(l, &queue.QueueConfig{Workers: 2, RetryLimit: 3}, client, queue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewPreprocessJob(pre))
	return q
}

// ProvideEchoHandler creates the HTTP API handler.
func ProvideEchoHandler(
	l *applogger.Logger,
	engine domsvc.Recommender,
	advisor domsvc.ConventionAdvisor,
	pre *usecase.PreprocessUseCase,
	dataset *usecase.DatasetUseCase,
	metrics repository.Metrics,
	jobs *queue.RedisQueue,
	chClient *pkgch.Client,
) *api.RecommendEchoHandler {
	h := api.NewRecommendEchoHandler(l, engine, advisor, pre, dataset, metrics)
	if jobs != nil {
		h.SetQueue(jobs)
	}
	h.SetHealthCheck(chClient.Health)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.DealCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaDealsHandler,
	chClient *pkgch.Client,
	handler *api.RecommendEchoHandler,
	jobs *queue.RedisQueue,
) *server.App {
	// Attach hook to consumer: example NoopHook for now; can be replaced via config
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, collector, consumer, kh, chClient)
	app.SetHTTPHandler(handler)
	if jobs != nil {
		app.SetJobQueue(jobs)
	}
	// attach deal processor to app for closing resources via collector
	if collector != nil {
		app.DealProc = collector.Processor()
	}
	return app
}
