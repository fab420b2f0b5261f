package models

import "time"

// Provenance marks where a candidate contract came from.
type Provenance string

const (
	SourceClassifier Provenance = "classifier"
	SourceSearch     Provenance = "search"
)

// Prediction is the classifier's point prediction for a partnership.
// Probability maps carry the full per-class distributions so the search can
// price arbitrary candidates, not just the argmax.
type Prediction struct {
	Strain       Strain                    `json:"strain"`
	Category     LevelCategory             `json:"category"`
	ProbStrain   float64                   `json:"prob_strain"`
	ProbCategory float64                   `json:"prob_category"`
	StrainProbs  map[Strain]float64        `json:"strain_probs,omitempty"`
	CatProbs     map[LevelCategory]float64 `json:"category_probs,omitempty"`
}

// Contract builds the concrete point-prediction contract: the lowest level
// of the predicted category in the predicted strain.
func (p Prediction) Contract() Contract {
	level := 1
	switch p.Category {
	case CategoryGrandSlam:
		level = 7
	case CategorySlam:
		level = 6
	case CategoryGame:
		switch {
		case p.Strain == StrainNoTrump:
			level = 3
		case p.Strain.IsMajor():
			level = 4
		default:
			level = 5
		}
	default:
		level = 2
	}
	return Contract{Level: level, Strain: p.Strain}
}

// WeightVector is the named search genome: one weight per heuristic term,
// each in [0,1]. Decoding into a contract is deterministic.
type WeightVector struct {
	HCP          float64 `json:"weight_hcp"`
	LTC          float64 `json:"weight_ltc"`
	Stopper      float64 `json:"weight_stopper"`
	Distribution float64 `json:"weight_distribution"`
	PreferMajor  float64 `json:"prefer_major"`
	Balance      float64 `json:"weight_balance"`
}

// Dim is the number of decision variables in a WeightVector.
const WeightVectorDim = 6

// Slice flattens the vector in field order.
func (w WeightVector) Slice() [WeightVectorDim]float64 {
	return [WeightVectorDim]float64{w.HCP, w.LTC, w.Stopper, w.Distribution, w.PreferMajor, w.Balance}
}

// WeightVectorFrom rebuilds the named genome from a raw slice.
func WeightVectorFrom(x [WeightVectorDim]float64) WeightVector {
	return WeightVector{HCP: x[0], LTC: x[1], Stopper: x[2], Distribution: x[3], PreferMajor: x[4], Balance: x[5]}
}

// RecommendOptions tunes a single recommendation run. Zero values fall back
// to the engine defaults.
type RecommendOptions struct {
	Generations int   `json:"generations,omitempty"`
	Population  int   `json:"population,omitempty"`
	Seed        int64 `json:"seed,omitempty"`
}

// CandidateContract is a proposed contract with provenance and, for
// search candidates, its originating genome and objective values.
type CandidateContract struct {
	Contract Contract   `json:"contract"`
	Source   Provenance `json:"source"`

	// Search-only provenance.
	Weights       *WeightVector `json:"weights,omitempty"`
	ExpectedScore float64       `json:"expected_score,omitempty"`
	Risk          float64       `json:"risk,omitempty"`
}

// ValidationResult is the validator's verdict on one candidate.
// Reasons name every violated rule; suggestions are advisory only.
type ValidationResult struct {
	Contract    Contract `json:"contract"`
	Valid       bool     `json:"valid"`
	Confidence  float64  `json:"confidence"`
	Reasons     []string `json:"reasons"`
	Suggestions []string `json:"suggestions"`
}

// FinalRecommendation is the single winner of a recommendation request.
type FinalRecommendation struct {
	Contract    Contract   `json:"contract"`
	Source      Provenance `json:"source"`
	Valid       bool       `json:"valid"`
	Confidence  float64    `json:"confidence"`
	Reasons     []string   `json:"reasons"`
	Suggestions []string   `json:"suggestions"`
	Timestamp   time.Time  `json:"timestamp"`

	// ClassifierDown is set when the point prediction was unavailable and
	// the recommendation came from search candidates alone.
	ClassifierDown bool `json:"classifier_down,omitempty"`
}
