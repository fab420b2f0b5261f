package usecase

import (
	"context"
	"encoding/json"
	"time"

	"BidSnapper/internal/domain/models"
	domrepo "BidSnapper/internal/domain/repository"
	pkgkafka "BidSnapper/pkg/kafka"
)

// KafkaDealsHandler consumes detected boards from Kafka, extracts their
// feature rows and writes them to storage.
type KafkaDealsHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
}

func NewKafkaDealsHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaDealsHandler {
	return &KafkaDealsHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaDealsHandler) Topic() string { return h.topic }

func (h *KafkaDealsHandler) Handle(ctx context.Context, b []byte) error {
	var board models.Board
	if err := json.Unmarshal(b, &board); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if board.DetectedAt > 1e11 { // ms
		board.DetectedAt = board.DetectedAt / 1000
	}
	if board.DetectedAt > 0 {
		// E2E latency from detection time to now (approx)
		h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(board.DetectedAt, 0)).Seconds())
	}

	row, err := ExtractRow(&board)
	if err != nil {
		h.metrics.RecordError("consumer_extract")
		return err
	}

	start := time.Now()
	if err := h.storage.Store(ctx, row); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	h.metrics.RecordMessageSent("clickhouse", board.Table)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaDealsHandler)(nil)
