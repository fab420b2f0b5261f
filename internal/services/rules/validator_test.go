package rules

import (
	"errors"
	"strings"
	"testing"

	"BidSnapper/internal/domain/models"
)

// strongNTFeatures fakes a 26-HCP balanced partnership with full stoppers.
func strongNTFeatures() *models.FeatureRecord {
	return &models.FeatureRecord{
		HCP:         26,
		SuitLength:  [4]int{7, 6, 7, 6},
		Balance1:    models.Balance{Category: models.Balanced, Severity: 0},
		Balance2:    models.Balance{Category: models.SemiBalanced, Severity: 0.25},
		Stopper:     [4]int{3, 3, 2, 2},
		HonorWeight: [4]float64{3.0, 2.0, 1.0, 0.5},
		HonorPower:  6.5,
		LTC:         6,
	}
}

func TestValidateStringMalformed(t *testing.T) {
	f := strongNTFeatures()
	_, err := ValidateString(f, "X")
	if err == nil {
		t.Fatal("expected malformed contract error")
	}
	var mc *models.MalformedContractError
	if !errors.As(err, &mc) {
		t.Fatalf("error type = %T, want MalformedContractError", err)
	}
}

func TestValidateGameNT(t *testing.T) {
	f := strongNTFeatures()
	res := Validate(f, models.Contract{Level: 3, Strain: models.StrainNoTrump})
	if !res.Valid {
		t.Fatalf("expected valid, reasons: %v", res.Reasons)
	}
	if res.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", res.Confidence)
	}
}

func TestValidateGrandSlamUnderpowered(t *testing.T) {
	f := strongNTFeatures()
	f.HCP = 25
	res := Validate(f, models.Contract{Level: 7, Strain: models.StrainNoTrump})
	if res.Valid {
		t.Fatal("expected invalid grand slam")
	}
	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, "grand slam needs 37+") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing HCP reason, got %v", res.Reasons)
	}
	if res.Confidence >= 1.0 {
		t.Fatalf("confidence = %v, want < 1.0", res.Confidence)
	}
}

func TestValidateConfidenceSteps(t *testing.T) {
	f := strongNTFeatures()
	f.HCP = 10
	f.Stopper = [4]int{0, 0, 0, 0}
	f.HonorWeight = [4]float64{0, 0, 0, 0}
	f.HonorPower = 0
	f.LTC = 12
	res := Validate(f, models.Contract{Level: 3, Strain: models.StrainNoTrump})
	if res.Valid {
		t.Fatal("expected invalid")
	}
	want := 1.0 - confidenceStep*float64(len(res.Reasons))
	if want < 0 {
		want = 0
	}
	if res.Confidence != want {
		t.Fatalf("confidence = %v, want %v (reasons %d)", res.Confidence, want, len(res.Reasons))
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", res.Confidence)
	}
}

func TestValidateMajorFitRequired(t *testing.T) {
	f := strongNTFeatures()
	f.SuitLength = [4]int{6, 7, 7, 6}
	res := Validate(f, models.Contract{Level: 4, Strain: models.StrainSpades})
	if res.Valid {
		t.Fatal("expected invalid without an 8-card fit")
	}
	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, "trump fit") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing fit reason, got %v", res.Reasons)
	}
}

func TestValidateAdvisoryMajorSuggestion(t *testing.T) {
	f := strongNTFeatures()
	f.SuitLength = [4]int{9, 5, 6, 6}
	f.HonorWeight = [4]float64{3.0, 1.0, 1.0, 1.5}
	res := Validate(f, models.Contract{Level: 5, Strain: models.StrainClubs})
	found := false
	for _, s := range res.Suggestions {
		if strings.Contains(s, "reconsidering 4S") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing major-fit suggestion, got %v", res.Suggestions)
	}
}

func TestValidateOutOfBounds(t *testing.T) {
	f := strongNTFeatures()
	res := Validate(f, models.Contract{Level: 9, Strain: models.StrainHearts})
	if res.Valid || res.Confidence != 0.0 || len(res.Reasons) != 1 {
		t.Fatalf("unexpected result for out-of-bounds contract: %+v", res)
	}
}

func TestValidatePartialFloors(t *testing.T) {
	f := strongNTFeatures()
	f.HCP = 12
	res := Validate(f, models.Contract{Level: 1, Strain: models.StrainHearts})
	if res.Valid {
		t.Fatal("expected level-1 floor violation at 12 HCP")
	}
	f.HCP = 16
	res = Validate(f, models.Contract{Level: 1, Strain: models.StrainHearts})
	if !res.Valid {
		t.Fatalf("expected valid 1H at 16 HCP, reasons: %v", res.Reasons)
	}
	f.HCP = 18
	res = Validate(f, models.Contract{Level: 2, Strain: models.StrainHearts})
	if res.Valid {
		t.Fatal("expected level-2 floor violation at 18 HCP")
	}
}
