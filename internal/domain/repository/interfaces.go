package repository

import (
	"context"
	"time"

	"BidSnapper/internal/domain/models"
)

// DealStream is a live feed of boards coming off the card-detection service.
type DealStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Board, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, b *models.Board) error
	PublishBatch(ctx context.Context, boards []*models.Board) error
	Close() error
}

type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, r *models.FeatureRow) error
	StoreBatch(ctx context.Context, rows []*models.FeatureRow) error
	Query(ctx context.Context, from, to time.Time, limit int) ([]*models.FeatureRow, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordMessageSent(backend, label string)
	RecordError(kind string)
	RecordRecommendation(strain string, valid bool)
	RecordLatency(op string, seconds float64)
}
