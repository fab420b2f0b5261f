package usecase

import (
	"context"
	"fmt"
	"time"

	"BidSnapper/internal/domain/models"
	drepo "BidSnapper/internal/domain/repository"
	"BidSnapper/internal/services/features"
)

// DealProcessor routes detected boards to the configured backend: raw
// boards to Kafka, or extracted feature rows straight into the store.
type DealProcessor struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	backend string
	batchSz int
	batchTO time.Duration
}

// NewDealProcessor creates a new DealProcessor instance.
func NewDealProcessor(
	pub drepo.Publisher,
	store drepo.Storage,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *DealProcessor {
	return &DealProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
	}
}

// Process routes a single board to the configured backend.
func (p *DealProcessor) Process(ctx context.Context, b *models.Board) error {
	if b == nil {
		return fmt.Errorf("board is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, b)
	case "clickhouse":
		var row *models.FeatureRow
		row, err = ExtractRow(b)
		if err == nil {
			err = p.store.Store(ctx, row)
		}
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process board: %w", err)
	}

	p.metrics.RecordMessageSent(p.backend, b.Table)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch routes multiple boards in a batch.
func (p *DealProcessor) ProcessBatch(ctx context.Context, boards []*models.Board) error {
	if len(boards) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, boards)
	case "clickhouse":
		rows := make([]*models.FeatureRow, 0, len(boards))
		for _, b := range boards {
			row, rowErr := ExtractRow(b)
			if rowErr != nil {
				p.metrics.RecordError("extract")
				continue
			}
			rows = append(rows, row)
		}
		err = p.store.StoreBatch(ctx, rows)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, b := range boards {
		p.metrics.RecordMessageSent(p.backend, b.Table)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// ExtractRow validates a board and extracts its labeled feature row.
func ExtractRow(b *models.Board) (*models.FeatureRow, error) {
	h1, err := models.ParseHand(b.Hand1)
	if err != nil {
		return nil, fmt.Errorf("hand1: %w", err)
	}
	h2, err := models.ParseHand(b.Hand2)
	if err != nil {
		return nil, fmt.Errorf("hand2: %w", err)
	}
	f, err := features.Extract(h1, h2)
	if err != nil {
		return nil, err
	}
	return &models.FeatureRow{
		BoardID:   b.ID,
		Extracted: time.Now().UTC(),
		Schema:    models.FeatureSchemaVersion,
		Values:    f.Vector(),
		Contract:  b.Contract,
	}, nil
}

// Close closes underlying resources if available.
func (p *DealProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
