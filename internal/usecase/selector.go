package usecase

import "BidSnapper/internal/domain/models"

type scoredCandidate struct {
	cand models.CandidateContract
	val  models.ValidationResult
}

// strainRank orders strains for tie-breaking: no-trump over majors over
// minors, each group in bid order.
func strainRank(s models.Strain) int {
	switch s {
	case models.StrainNoTrump:
		return 5
	case models.StrainSpades:
		return 4
	case models.StrainHearts:
		return 3
	case models.StrainDiamonds:
		return 2
	default:
		return 1
	}
}

// better orders candidates by rule validity first, then confidence, then
// classifier provenance, then the higher level, then strain rank.
func better(a, b scoredCandidate) bool {
	if a.val.Valid != b.val.Valid {
		return a.val.Valid
	}
	if a.val.Confidence != b.val.Confidence {
		return a.val.Confidence > b.val.Confidence
	}
	if a.cand.Source != b.cand.Source {
		return a.cand.Source == models.SourceClassifier
	}
	if a.cand.Contract.Level != b.cand.Contract.Level {
		return a.cand.Contract.Level > b.cand.Contract.Level
	}
	return strainRank(a.cand.Contract.Strain) > strainRank(b.cand.Contract.Strain)
}

// selectBest returns the winner of the candidate union. The slice must be
// non-empty; the search never returns an empty front.
func selectBest(scored []scoredCandidate) scoredCandidate {
	best := scored[0]
	for _, s := range scored[1:] {
		if better(s, best) {
			best = s
		}
	}
	return best
}
