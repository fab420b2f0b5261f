package repository

import (
	"context"
	"time"

	"BidSnapper/internal/domain/models"
)

// FeatureStore provides read-only access to extracted feature rows for the
// training collaborator.
type FeatureStore interface {
	GetRows(ctx context.Context, from, to time.Time, limit int) ([]models.FeatureRow, error)
	GetLatestN(ctx context.Context, n int) ([]models.FeatureRow, error)
}
