package usecase

import (
	"context"
	"fmt"
	"time"

	"BidSnapper/internal/domain/models"
	domrepo "BidSnapper/internal/domain/repository"
)

// DatasetUseCase provides business logic for retrieving stored feature rows.
type DatasetUseCase struct {
	store domrepo.FeatureStore
}

func NewDatasetUseCase(store domrepo.FeatureStore) *DatasetUseCase {
	return &DatasetUseCase{store: store}
}

type GetRowsParams struct {
	From  time.Time
	To    time.Time
	Limit int
}

type GetRowsResult struct {
	From  time.Time
	To    time.Time
	Count int
	Rows  []models.FeatureRow
}

func (uc *DatasetUseCase) GetRows(ctx context.Context, p GetRowsParams) (*GetRowsResult, error) {
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 10000
	}
	if p.Limit > 50000 {
		p.Limit = 50000
	}

	rows, err := uc.store.GetRows(ctx, p.From, p.To, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("get feature rows: %w", err)
	}
	if len(rows) > p.Limit {
		rows = rows[:p.Limit]
	}

	return &GetRowsResult{
		From:  p.From,
		To:    p.To,
		Count: len(rows),
		Rows:  rows,
	}, nil
}

// GetLatest returns the n most recently extracted rows in ascending order.
func (uc *DatasetUseCase) GetLatest(ctx context.Context, n int) (*GetRowsResult, error) {
	if n <= 0 {
		n = 100
	}
	if n > 50000 {
		n = 50000
	}

	rows, err := uc.store.GetLatestN(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("get latest rows: %w", err)
	}

	res := &GetRowsResult{Count: len(rows), Rows: rows}
	if len(rows) > 0 {
		res.From = rows[0].Extracted
		res.To = rows[len(rows)-1].Extracted
	}
	return res, nil
}
