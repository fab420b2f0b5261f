package classifier

import (
	"context"
	"testing"
	"time"

	"BidSnapper/internal/domain/models"
	"BidSnapper/internal/service/cache"
	"BidSnapper/internal/services/features"
)

func record(t *testing.T, h1, h2 []string) *models.FeatureRecord {
	t.Helper()
	hand1, err := models.ParseHand(h1)
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	hand2, err := models.ParseHand(h2)
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	f, err := features.Extract(hand1, hand2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return f
}

func gameRecord(t *testing.T) *models.FeatureRecord {
	return record(t,
		[]string{"AS", "KS", "QS", "3S", "2S", "AH", "4H", "3H", "KD", "5D", "4D", "3C", "2C"},
		[]string{"JS", "10S", "9S", "8S", "KH", "QH", "2H", "AD", "2D", "QC", "6C", "5C", "4C"},
	)
}

func TestLocalPredictorMajorGame(t *testing.T) {
	f := gameRecord(t)
	pred, err := NewLocalPredictor().Predict(context.Background(), f)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.Strain != models.StrainSpades {
		t.Fatalf("strain = %s, want S", pred.Strain)
	}
	if pred.Category != models.CategoryGame {
		t.Fatalf("category = %s, want Game", pred.Category)
	}
	if c := pred.Contract(); c.Level != 4 {
		t.Fatalf("point contract = %s, want 4S", c)
	}
}

func TestParseEnums(t *testing.T) {
	for _, s := range models.Strains {
		got, ok := parseStrain(string(s))
		if !ok || got != s {
			t.Fatalf("parseStrain(%q) = %v, %v", s, got, ok)
		}
	}
	if _, ok := parseStrain("X"); ok {
		t.Fatal("parseStrain accepted unknown strain")
	}
	for _, c := range models.Categories {
		got, ok := parseCategory(string(c))
		if !ok || got != c {
			t.Fatalf("parseCategory(%q) = %v, %v", c, got, ok)
		}
	}
	if _, ok := parseCategory("Rubber"); ok {
		t.Fatal("parseCategory accepted unknown category")
	}
}

type countingClassifier struct {
	calls int
	pred  models.Prediction
}

func (c *countingClassifier) Predict(context.Context, *models.FeatureRecord) (models.Prediction, error) {
	c.calls++
	return c.pred, nil
}

func TestCachedPredictor(t *testing.T) {
	inner := &countingClassifier{pred: models.Prediction{
		Strain:       models.StrainNoTrump,
		Category:     models.CategoryGame,
		ProbStrain:   0.9,
		ProbCategory: 0.8,
	}}
	cached := NewCachedPredictor(inner, cache.NewTTLCache(), time.Minute)
	f := gameRecord(t)

	first, err := cached.Predict(context.Background(), f)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	second, err := cached.Predict(context.Background(), f)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}
	if first.Strain != second.Strain || first.ProbStrain != second.ProbStrain {
		t.Fatalf("cached prediction differs: %+v vs %+v", first, second)
	}
}
