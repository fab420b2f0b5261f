package search

import (
	"fmt"
	"math"

	"BidSnapper/internal/domain/models"
)

// SchemaMismatchError reports a feature vector that does not match the
// layout this search was built against. It indicates version skew between
// the extraction and consumption stages and is never coerced.
type SchemaMismatchError struct {
	Got  int
	Want int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("feature schema mismatch: got %d values, want %d", e.Got, e.Want)
}

// problem binds the feature record and classifier probabilities into the
// two-objective contract optimization evaluated by the search.
type problem struct {
	features *models.FeatureRecord
	pred     *models.Prediction
}

// normScore is the largest value of the static scoring table (7NT),
// used to put the score objective on a [0,1] scale.
var normScore = float64(models.Contract{Level: 7, Strain: models.StrainNoTrump}.ExpectedScore())

// decode maps a weight genome to a concrete contract. Deterministic:
// the same genome and features always decode to the same contract.
func (p *problem) decode(w models.WeightVector) models.Contract {
	f := p.features

	// Level: HCP and stopper components averaged and shifted, then adjusted
	// by the partnership loser count. Six combined losers is the neutral
	// point; the LTC weight scales how hard fewer or extra losers move the
	// level.
	lvl := int(math.Round((w.HCP*7+w.Stopper*7)/2+w.LTC*(6-f.LTC)/2)) + 1
	if lvl < 1 {
		lvl = 1
	}
	if lvl > 7 {
		lvl = 7
	}

	// Strain: argmax of a per-strain score from honor weight, suit length
	// and balance, with the preference bonuses applied multiplicatively.
	longest, longestLen, unique := longestSuit(f)
	best := models.StrainSpades
	bestScore := math.Inf(-1)
	for _, s := range models.Strains {
		var sc float64
		if s == models.StrainNoTrump {
			sc = float64(f.StopperCount()) + f.HonorPower/4 + 2*w.Balance*(1-(f.Balance1.Severity+f.Balance2.Severity)/2)
			if f.Balance1.Severity <= 0.25 && f.Balance2.Severity <= 0.25 {
				sc *= 1.2
			}
		} else {
			sc = f.HonorWeightOf(s) + 0.5*float64(f.LengthOf(s)) + w.Distribution*math.Abs(float64(f.LengthOf(s))-5)/2
			if s.IsMajor() && w.PreferMajor > 0.5 {
				sc *= 1.5
			}
			if unique && s == longest {
				if (s.IsMajor() && longestLen >= 8) || longestLen >= 10 {
					sc *= 1.3
				}
			}
		}
		if sc > bestScore {
			bestScore = sc
			best = s
		}
	}
	return models.Contract{Level: lvl, Strain: best}
}

// evaluate returns the two minimized objectives for a genome:
// negated normalized expected score, and adjusted risk.
func (p *problem) evaluate(w models.WeightVector) (models.Contract, [2]float64) {
	c := p.decode(w)
	score := float64(c.ExpectedScore()) / normScore
	risk := p.risk(c)
	return c, [2]float64{-score, risk}
}

// risk estimates the chance the contract fails, from the classifier's
// class probabilities adjusted by domain penalties and bonuses.
func (p *problem) risk(c models.Contract) float64 {
	pStrain, pCat := p.classProbs(c)
	r := 1 - pStrain*pCat

	f := p.features
	if c.Level >= 6 && f.HCP < 30 {
		r += 0.03 * float64(30-f.HCP)
	}
	if c.Strain != models.StrainNoTrump {
		switch {
		case f.LengthOf(c.Strain) < 8:
			r += 0.15
		case f.LengthOf(c.Strain) >= 10:
			r -= 0.10
		}
	}
	if c.Strain == models.StrainNoTrump && c.Level == 7 && f.HCP >= 33 {
		r -= 0.10
	}
	// The classifier rarely sees slams; trust heavy HCP over a timid
	// category probability.
	if c.Level >= 6 && pCat < 0.2 && f.HCP >= 32 {
		r -= 0.15
	}

	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return r
}

// classProbs looks up the probability the classifier assigns to the
// contract's strain and category. Without a prediction (classifier down)
// both distributions are taken as uniform.
func (p *problem) classProbs(c models.Contract) (float64, float64) {
	if p.pred == nil {
		return 1.0 / float64(len(models.Strains)), 1.0 / float64(len(models.Categories))
	}
	pStrain := p.pred.StrainProbs[c.Strain]
	if pStrain == 0 && c.Strain == p.pred.Strain {
		pStrain = p.pred.ProbStrain
	}
	pCat := p.pred.CatProbs[c.Category()]
	if pCat == 0 && c.Category() == p.pred.Category {
		pCat = p.pred.ProbCategory
	}
	return pStrain, pCat
}

// longestSuit returns the strain of the single longest suit, its length,
// and whether it is strictly longer than every other suit.
func longestSuit(f *models.FeatureRecord) (models.Strain, int, bool) {
	suits := [4]models.Strain{models.StrainSpades, models.StrainHearts, models.StrainDiamonds, models.StrainClubs}
	best, bestLen, unique := suits[0], f.LengthOf(suits[0]), true
	for _, s := range suits[1:] {
		l := f.LengthOf(s)
		switch {
		case l > bestLen:
			best, bestLen, unique = s, l, true
		case l == bestLen:
			unique = false
		}
	}
	return best, bestLen, unique
}
