package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"BidSnapper/internal/domain/models"
)

type fakeFeatureStore struct {
	rows  []models.FeatureRow
	lastN int
}

func (f *fakeFeatureStore) GetRows(_ context.Context, _, _ time.Time, limit int) ([]models.FeatureRow, error) {
	if limit > len(f.rows) {
		limit = len(f.rows)
	}
	return f.rows[:limit], nil
}

func (f *fakeFeatureStore) GetLatestN(_ context.Context, n int) ([]models.FeatureRow, error) {
	f.lastN = n
	if n > len(f.rows) {
		n = len(f.rows)
	}
	return f.rows[len(f.rows)-n:], nil
}

func seededStore(n int) *fakeFeatureStore {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeFeatureStore{}
	for i := 0; i < n; i++ {
		store.rows = append(store.rows, models.FeatureRow{
			BoardID:   fmt.Sprintf("b%d", i),
			Extracted: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return store
}

func TestDatasetGetLatest(t *testing.T) {
	store := seededStore(5)
	uc := NewDatasetUseCase(store)

	res, err := uc.GetLatest(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if res.Count != 3 || len(res.Rows) != 3 {
		t.Fatalf("result = %+v, want 3 rows", res)
	}
	if res.Rows[0].BoardID != "b2" || res.Rows[2].BoardID != "b4" {
		t.Fatalf("unexpected window %q..%q, want b2..b4", res.Rows[0].BoardID, res.Rows[2].BoardID)
	}
	if !res.From.Equal(res.Rows[0].Extracted) || !res.To.Equal(res.Rows[2].Extracted) {
		t.Fatalf("window bounds %v..%v do not match rows", res.From, res.To)
	}
}

func TestDatasetGetLatestClampsN(t *testing.T) {
	store := seededStore(2)
	uc := NewDatasetUseCase(store)

	if _, err := uc.GetLatest(context.Background(), 0); err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if store.lastN != 100 {
		t.Fatalf("n = %d, want default 100", store.lastN)
	}
	if _, err := uc.GetLatest(context.Background(), 1_000_000); err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if store.lastN != 50000 {
		t.Fatalf("n = %d, want cap 50000", store.lastN)
	}
}

func TestDatasetGetRowsRejectsInvertedWindow(t *testing.T) {
	uc := NewDatasetUseCase(seededStore(1))
	now := time.Now()
	if _, err := uc.GetRows(context.Background(), GetRowsParams{From: now, To: now.Add(-time.Hour)}); err == nil {
		t.Fatal("expected error for from > to")
	}
}
