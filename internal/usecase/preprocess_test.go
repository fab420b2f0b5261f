package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"BidSnapper/internal/domain/models"
)

type memStorage struct {
	rows []*models.FeatureRow
}

func (m *memStorage) Init(context.Context) error { return nil }
func (m *memStorage) Store(_ context.Context, r *models.FeatureRow) error {
	m.rows = append(m.rows, r)
	return nil
}
func (m *memStorage) StoreBatch(_ context.Context, rows []*models.FeatureRow) error {
	m.rows = append(m.rows, rows...)
	return nil
}
func (m *memStorage) Query(context.Context, time.Time, time.Time, int) ([]*models.FeatureRow, error) {
	return m.rows, nil
}
func (m *memStorage) Health(context.Context) error { return nil }
func (m *memStorage) Close() error                 { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordMessageSent(string, string)  {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordRecommendation(string, bool) {}
func (nopMetrics) RecordLatency(string, float64)     {}

func TestPreprocessSkipsInvalidBoards(t *testing.T) {
	store := &memStorage{}
	uc := NewPreprocessUseCase(store, nopMetrics{}, testLogger(t))

	good := models.Board{
		ID: "b1",
		Hand1: []string{
			"AS", "7S", "3S", "2S", "KH", "8H", "4H",
			"QD", "9D", "5D", "KC", "6C", "2C",
		},
		Hand2: []string{
			"KS", "8S", "4S", "AH", "9H", "5H", "2H",
			"KD", "8D", "3D", "QC", "9C", "4C",
		},
		Contract: "3NT",
	}
	short := models.Board{ID: "b2", Hand1: []string{"AS"}, Hand2: good.Hand2, Contract: "3NT"}
	badContract := good
	badContract.ID = "b3"
	badContract.Contract = "9X"
	// Hand2 repeats hand1's ace of spades: both hands parse, the deal does not.
	overlap := good
	overlap.ID = "b4"
	overlap.Hand2 = append([]string{"AS"}, good.Hand2[1:]...)

	res, err := uc.Preprocess(context.Background(), PreprocessParams{
		Boards: []models.Board{good, short, badContract, overlap},
	})
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if res.Total != 4 || res.Stored != 1 || res.Skipped != 3 {
		t.Fatalf("result = %+v, want total 4 stored 1 skipped 3", res)
	}
	if _, ok := res.Errors["b4"]; !ok {
		t.Fatalf("missing skip reason for b4: %+v", res.Errors)
	}
	if _, ok := res.Errors["b2"]; !ok {
		t.Fatalf("missing skip reason for b2: %+v", res.Errors)
	}
	if len(store.rows) != 1 {
		t.Fatalf("stored %d rows, want 1", len(store.rows))
	}
	row := store.rows[0]
	if row.BoardID != "b1" || row.Contract != "3NT" || row.Schema != models.FeatureSchemaVersion {
		t.Fatalf("unexpected row %+v", row)
	}
	if len(row.Values) != len(models.FeatureNames) {
		t.Fatalf("row has %d values, want %d", len(row.Values), len(models.FeatureNames))
	}
}

func TestExtractRowRejectsSharedCards(t *testing.T) {
	b := &models.Board{
		ID: "b1",
		Hand1: []string{
			"AS", "7S", "3S", "2S", "KH", "8H", "4H",
			"QD", "9D", "5D", "KC", "6C", "2C",
		},
		Hand2: []string{
			"AS", "8S", "4S", "AH", "9H", "5H", "2H",
			"KD", "8D", "3D", "QC", "9C", "4C",
		},
		Contract: "3NT",
	}
	_, err := ExtractRow(b)
	if err == nil {
		t.Fatal("expected error for card held by both hands")
	}
	if !strings.Contains(err.Error(), "AS") {
		t.Fatalf("error does not name the shared card: %v", err)
	}
}

func TestPreprocessRejectsEmptyDataset(t *testing.T) {
	uc := NewPreprocessUseCase(&memStorage{}, nopMetrics{}, testLogger(t))
	if _, err := uc.Preprocess(context.Background(), PreprocessParams{}); err == nil {
		t.Fatal("expected error for empty dataset")
	}
}
