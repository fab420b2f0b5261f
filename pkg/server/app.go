package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/internal/handler/api"
	"BidSnapper/internal/repository"
	"BidSnapper/internal/services/classifier"
	"BidSnapper/internal/services/conventions"
	"BidSnapper/internal/services/search"
	"BidSnapper/internal/usecase"
	pkgch "BidSnapper/pkg/clickhouse"
	"BidSnapper/pkg/config"
	xhttp "BidSnapper/pkg/http"
	pkgkafka "BidSnapper/pkg/kafka"
	applogger "BidSnapper/pkg/logger"
	pkgmetrics "BidSnapper/pkg/metrics"
	"BidSnapper/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.DealCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	jobQueue    *queue.RedisQueue
	DealProc    *usecase.DealProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.DealCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetJobQueue allows DI to inject the background job queue.
func (a *App) SetJobQueue(q *queue.RedisQueue) { a.jobQueue = q }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Setup Echo HTTP server using pkg/http and register routes via handler
	var httpHandler xhttp.Handler
	if a.httpHandler != nil {
		httpHandler = a.httpHandler
	} else {
		var predictor domsvc.ContractClassifier = classifier.NewLocalPredictor()
		if a.cfg.Classifier.ServiceURL != "" {
			predictor = classifier.NewHTTPPredictor(a.cfg)
		}
		engine := usecase.NewRecommendEngine(predictor, search.Config{
			Generations: a.cfg.Search.Generations,
			Population:  a.cfg.Search.Population,
			Seed:        a.cfg.Search.Seed,
			FrontLimit:  a.cfg.Search.FrontLimit,
		}, l)
		advisor := conventions.NewAdvisor()

		var preprocess *usecase.PreprocessUseCase
		var dataset *usecase.DatasetUseCase
		if a.chClient != nil {
			store := repository.NewCHFeatureStore(a.chClient)
			store.SetLogger(l)
			dataset = usecase.NewDatasetUseCase(store)
			storage := repository.NewClickHouseStorage(a.chClient.DB(), repository.FeatureRowsTable)
			preprocess = usecase.NewPreprocessUseCase(storage, pkgmetrics.New(), l)
		}

		httpHandler = api.NewRecommendEchoHandler(l, engine, advisor, preprocess, dataset, nil)
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start collector when the detection feed is configured
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("collector error", applogger.Error(err))
			}
		}()
		l.Info("collector started", applogger.Strings("tables", a.cfg.Detect.Tables))
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start job queue workers if configured
	if a.jobQueue != nil {
		if err := a.jobQueue.Start(); err != nil {
			l.Error("job queue start error", applogger.Error(err))
		} else {
			a.jobQueue.StartRetryProcessor()
		}
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	// best-effort logging via stdout
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Stop job queue workers
	if a.jobQueue != nil {
		if err := a.jobQueue.Stop(ctx); err != nil {
			l.Warn("job queue stop error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close deal processor resources (publisher/storage)
	if a.DealProc != nil {
		a.DealProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}
