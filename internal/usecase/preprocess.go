package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"BidSnapper/internal/domain/models"
	drepo "BidSnapper/internal/domain/repository"
	applogger "BidSnapper/pkg/logger"
)

// PreprocessUseCase turns a raw labeled dataset into feature rows for the
// store. Invalid boards are skipped with a reason instead of failing the
// whole batch.
type PreprocessUseCase struct {
	storage drepo.Storage
	metrics drepo.Metrics
	log     *applogger.Logger
	workers int
	timeout time.Duration
}

func NewPreprocessUseCase(storage drepo.Storage, metrics drepo.Metrics, log *applogger.Logger) *PreprocessUseCase {
	return &PreprocessUseCase{storage: storage, metrics: metrics, log: log, workers: 4, timeout: 60 * time.Second}
}

type PreprocessParams struct {
	Boards []models.Board `json:"boards"`
}

type PreprocessResult struct {
	Total   int               `json:"total"`
	Stored  int               `json:"stored"`
	Skipped int               `json:"skipped"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (uc *PreprocessUseCase) Preprocess(ctx context.Context, p PreprocessParams) (*PreprocessResult, error) {
	if len(p.Boards) == 0 {
		return nil, fmt.Errorf("boards required")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type item struct {
		key string
		row *models.FeatureRow
		err error
	}
	ch := make(chan item, len(p.Boards))
	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup

	for i := range p.Boards {
		wg.Add(1)
		go func(idx int, b models.Board) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key := b.ID
			if key == "" {
				key = fmt.Sprintf("board %d", idx+1)
			}
			if b.Contract != "" {
				if _, err := models.ParseContract(b.Contract); err != nil {
					ch <- item{key: key, err: err}
					return
				}
			}
			row, err := ExtractRow(&b)
			ch <- item{key: key, row: row, err: err}
		}(i, p.Boards[i])
	}

	go func() { wg.Wait(); close(ch) }()

	res := &PreprocessResult{Total: len(p.Boards), Errors: map[string]string{}}
	rows := make([]*models.FeatureRow, 0, len(p.Boards))
	for it := range ch {
		if it.err != nil {
			res.Skipped++
			res.Errors[it.key] = it.err.Error()
			uc.metrics.RecordError("preprocess_skip")
			continue
		}
		rows = append(rows, it.row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid boards in dataset")
	}

	start := time.Now()
	if err := uc.storage.StoreBatch(ctx, rows); err != nil {
		uc.metrics.RecordError("preprocess_store")
		return nil, fmt.Errorf("store feature rows: %w", err)
	}
	uc.metrics.RecordLatency("preprocess_store", time.Since(start).Seconds())

	res.Stored = len(rows)
	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	uc.log.Info("dataset preprocessed",
		applogger.Int("total", res.Total),
		applogger.Int("stored", res.Stored),
		applogger.Int("skipped", res.Skipped),
	)
	return res, nil
}
