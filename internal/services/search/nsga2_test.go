package search

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"BidSnapper/internal/domain/models"
	"BidSnapper/internal/services/features"
)

func mustHand(t *testing.T, tokens []string) models.Hand {
	t.Helper()
	h, err := models.ParseHand(tokens)
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	return h
}

// balancedRecord is a flat 24 HCP partnership with every suit stopped and no
// eight-card major fit.
func balancedRecord(t *testing.T) *models.FeatureRecord {
	t.Helper()
	h1 := mustHand(t, []string{
		"AS", "7S", "3S", "2S",
		"KH", "8H", "4H",
		"QD", "9D", "5D",
		"KC", "6C", "2C",
	})
	h2 := mustHand(t, []string{
		"KS", "8S", "4S",
		"AH", "9H", "5H", "2H",
		"KD", "8D", "3D",
		"QC", "9C", "4C",
	})
	f, err := features.Extract(h1, h2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return f
}

func TestGenerateDeterministic(t *testing.T) {
	f := balancedRecord(t)
	cfg := Config{Generations: 20, Population: 60, Seed: 7}

	first, err := Generate(f, nil, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(f, nil, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different candidates:\n%+v\n%+v", first, second)
	}
}

func TestGenerateBalancedPartnership(t *testing.T) {
	f := balancedRecord(t)
	cands, err := Generate(f, nil, Config{Seed: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(cands) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if len(cands) > 3 {
		t.Fatalf("expected at most 3 candidates, got %d", len(cands))
	}

	seen := make(map[models.Contract]bool, len(cands))
	noTrump := false
	for _, c := range cands {
		if !c.Contract.Valid() {
			t.Fatalf("candidate %s out of bounds", c.Contract)
		}
		if c.Source != models.SourceSearch {
			t.Fatalf("candidate %s has source %q", c.Contract, c.Source)
		}
		if math.Abs(c.ExpectedScore-float64(c.Contract.ExpectedScore())) > 1e-6 {
			t.Fatalf("candidate %s score %v, want %d", c.Contract, c.ExpectedScore, c.Contract.ExpectedScore())
		}
		if c.Risk < 0 || c.Risk > 1 {
			t.Fatalf("candidate %s risk %v outside [0,1]", c.Contract, c.Risk)
		}
		if seen[c.Contract] {
			t.Fatalf("duplicate candidate %s", c.Contract)
		}
		seen[c.Contract] = true
		if c.Contract.Strain == models.StrainNoTrump && c.Contract.Level >= 3 && c.Contract.Level <= 5 {
			noTrump = true
		}
	}
	if !noTrump {
		t.Fatalf("expected a no-trump candidate at level 3-5, got %+v", cands)
	}
}

func TestDecodeLoserWeightShiftsLevel(t *testing.T) {
	// The balanced deal holds four combined losers, below the six-loser
	// neutral point, so a heavy LTC weight must push the level up.
	p := &problem{features: balancedRecord(t)}
	base := p.decode(models.WeightVector{HCP: 0.5, Stopper: 0.5})
	tight := p.decode(models.WeightVector{HCP: 0.5, Stopper: 0.5, LTC: 1})
	if tight.Level <= base.Level {
		t.Fatalf("LTC weight had no effect on level: %s vs %s", base, tight)
	}
}

func TestGenerateWithClassifierHint(t *testing.T) {
	f := balancedRecord(t)
	pred := &models.Prediction{
		Strain:       models.StrainNoTrump,
		Category:     models.CategoryGame,
		ProbStrain:   0.8,
		ProbCategory: 0.7,
	}
	cands, err := Generate(f, pred, Config{Generations: 15, Population: 40, Seed: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(cands) == 0 {
		t.Fatal("expected candidates with classifier hint")
	}
	for _, c := range cands {
		if c.Risk < 0 || c.Risk > 1 {
			t.Fatalf("candidate %s risk %v outside [0,1]", c.Contract, c.Risk)
		}
	}
}

func TestGenerateFromVector(t *testing.T) {
	f := balancedRecord(t)
	cands, err := GenerateFromVector(f.Vector(), nil, Config{Generations: 10, Population: 30, Seed: 2})
	if err != nil {
		t.Fatalf("GenerateFromVector: %v", err)
	}
	if len(cands) == 0 {
		t.Fatal("expected candidates from flat vector")
	}
}

func TestGenerateFromVectorSchemaMismatch(t *testing.T) {
	_, err := GenerateFromVector(make([]float64, 5), nil, Config{Seed: 1})
	if err == nil {
		t.Fatal("expected schema mismatch error")
	}
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SchemaMismatchError, got %T: %v", err, err)
	}
	if mismatch.Got != 5 || mismatch.Want != len(models.FeatureNames) {
		t.Fatalf("mismatch reports got=%d want=%d", mismatch.Got, mismatch.Want)
	}
}
