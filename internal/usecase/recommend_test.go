package usecase

import (
	"context"
	"errors"
	"testing"

	"BidSnapper/internal/domain/models"
	"BidSnapper/internal/services/search"
	applogger "BidSnapper/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testHands(t *testing.T) (models.Hand, models.Hand) {
	t.Helper()
	h1, err := models.ParseHand([]string{
		"AS", "7S", "3S", "2S",
		"KH", "8H", "4H",
		"QD", "9D", "5D",
		"KC", "6C", "2C",
	})
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	h2, err := models.ParseHand([]string{
		"KS", "8S", "4S",
		"AH", "9H", "5H", "2H",
		"KD", "8D", "3D",
		"QC", "9C", "4C",
	})
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	return h1, h2
}

type stubClassifier struct {
	pred models.Prediction
	err  error
}

func (s *stubClassifier) Predict(context.Context, *models.FeatureRecord) (models.Prediction, error) {
	return s.pred, s.err
}

func TestRecommendWithClassifier(t *testing.T) {
	stub := &stubClassifier{pred: models.Prediction{
		Strain:       models.StrainNoTrump,
		Category:     models.CategoryGame,
		ProbStrain:   0.8,
		ProbCategory: 0.7,
	}}
	engine := NewRecommendEngine(stub, search.Config{Generations: 20, Population: 60, Seed: 1}, testLogger(t))

	h1, h2 := testHands(t)
	rec, err := engine.Recommend(context.Background(), h1, h2, models.RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.ClassifierDown {
		t.Fatal("classifier was up but recommendation is flagged degraded")
	}
	if !rec.Contract.Valid() {
		t.Fatalf("recommended contract %s out of bounds", rec.Contract)
	}
	if rec.Source != models.SourceClassifier && rec.Source != models.SourceSearch {
		t.Fatalf("unknown provenance %q", rec.Source)
	}
	if rec.Confidence < 0 || rec.Confidence > 1 {
		t.Fatalf("confidence %v outside [0,1]", rec.Confidence)
	}
	if rec.Timestamp.IsZero() {
		t.Fatal("missing timestamp")
	}
}

func TestRecommendDegradesWhenClassifierDown(t *testing.T) {
	stub := &stubClassifier{err: errors.New("connection refused")}
	engine := NewRecommendEngine(stub, search.Config{Generations: 20, Population: 60, Seed: 1}, testLogger(t))

	h1, h2 := testHands(t)
	rec, err := engine.Recommend(context.Background(), h1, h2, models.RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !rec.ClassifierDown {
		t.Fatal("expected degraded recommendation")
	}
	if rec.Source != models.SourceSearch {
		t.Fatalf("degraded run must recommend from search, got %q", rec.Source)
	}
	if !rec.Contract.Valid() {
		t.Fatalf("recommended contract %s out of bounds", rec.Contract)
	}
}

func TestRecommendRejectsMalformedHand(t *testing.T) {
	engine := NewRecommendEngine(nil, search.Config{}, testLogger(t))
	h1, h2 := testHands(t)
	_, err := engine.Recommend(context.Background(), h1[:12], h2, models.RecommendOptions{})
	var malformed *models.MalformedHandError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedHandError, got %v", err)
	}
}

func TestRecommendRejectsSharedCards(t *testing.T) {
	engine := NewRecommendEngine(nil, search.Config{}, testLogger(t))
	h1, h2 := testHands(t)
	// Give hand2 the ace of spades that hand1 already holds.
	h2 = append(models.Hand{}, h2...)
	h2[0] = h1[0]
	_, err := engine.Recommend(context.Background(), h1, h2, models.RecommendOptions{})
	var malformed *models.MalformedHandError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedHandError for shared card, got %v", err)
	}
}

func TestSelectBestOrdering(t *testing.T) {
	c := func(level int, strain models.Strain, source models.Provenance, valid bool, conf float64) scoredCandidate {
		return scoredCandidate{
			cand: models.CandidateContract{Contract: models.Contract{Level: level, Strain: strain}, Source: source},
			val:  models.ValidationResult{Valid: valid, Confidence: conf},
		}
	}
	tests := []struct {
		name  string
		cands []scoredCandidate
		want  models.Contract
	}{
		{
			"valid beats higher-confidence invalid",
			[]scoredCandidate{
				c(7, models.StrainNoTrump, models.SourceSearch, false, 0.9),
				c(3, models.StrainNoTrump, models.SourceSearch, true, 0.7),
			},
			models.Contract{Level: 3, Strain: models.StrainNoTrump},
		},
		{
			"confidence breaks validity tie",
			[]scoredCandidate{
				c(4, models.StrainSpades, models.SourceSearch, true, 0.7),
				c(3, models.StrainNoTrump, models.SourceSearch, true, 0.85),
			},
			models.Contract{Level: 3, Strain: models.StrainNoTrump},
		},
		{
			"classifier provenance breaks confidence tie",
			[]scoredCandidate{
				c(4, models.StrainHearts, models.SourceSearch, true, 0.85),
				c(4, models.StrainSpades, models.SourceClassifier, true, 0.85),
			},
			models.Contract{Level: 4, Strain: models.StrainSpades},
		},
		{
			"higher level breaks provenance tie",
			[]scoredCandidate{
				c(3, models.StrainHearts, models.SourceSearch, true, 0.85),
				c(4, models.StrainHearts, models.SourceSearch, true, 0.85),
			},
			models.Contract{Level: 4, Strain: models.StrainHearts},
		},
		{
			"no-trump outranks a major at the same level",
			[]scoredCandidate{
				c(4, models.StrainSpades, models.SourceSearch, true, 0.85),
				c(4, models.StrainNoTrump, models.SourceSearch, true, 0.85),
			},
			models.Contract{Level: 4, Strain: models.StrainNoTrump},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectBest(tt.cands).cand.Contract
			if got != tt.want {
				t.Fatalf("selectBest = %s, want %s", got, tt.want)
			}
		})
	}
}
