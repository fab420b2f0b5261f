package classifier

import (
	"context"

	"BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
)

// LocalPredictor is a heuristic stand-in used when no model sidecar is
// configured. It buckets combined strength into a level category and picks
// the strain with the best fit, with wide probability margins.
type LocalPredictor struct{}

func NewLocalPredictor() *LocalPredictor { return &LocalPredictor{} }

func (p *LocalPredictor) Predict(_ context.Context, f *models.FeatureRecord) (models.Prediction, error) {
	category := models.CategoryPartial
	switch {
	case f.HCP >= 37:
		category = models.CategoryGrandSlam
	case f.HCP >= 32:
		category = models.CategorySlam
	case f.HCP >= 24:
		category = models.CategoryGame
	}

	strain := models.StrainNoTrump
	bestLen := 0
	for _, s := range models.Strains[:4] {
		if l := f.LengthOf(s); l > bestLen {
			strain, bestLen = s, l
		}
	}
	balanced := f.Balance1.Severity <= 0.25 && f.Balance2.Severity <= 0.25
	if bestLen < 8 || (balanced && f.StopperCount() == 4 && !strain.IsMajor()) {
		strain = models.StrainNoTrump
	}

	return models.Prediction{
		Strain:       strain,
		Category:     category,
		ProbStrain:   0.5,
		ProbCategory: 0.5,
	}, nil
}

var _ domsvc.ContractClassifier = (*LocalPredictor)(nil)
