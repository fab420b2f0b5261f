package classifier

import (
	"context"
	"errors"
	"fmt"

	"BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/pkg/config"
)

// ErrUnavailable wraps every transport failure so callers can degrade to a
// search-only recommendation instead of failing the request.
var ErrUnavailable = errors.New("classifier unavailable")

// HTTPPredictor calls the random-forest model-serving sidecar over HTTP.
type HTTPPredictor struct {
	base     *httpBase
	attempts int
}

func NewHTTPPredictor(cfg *config.Config) *HTTPPredictor {
	attempts := cfg.Classifier.Retries
	if attempts <= 0 {
		attempts = 1
	}
	return &HTTPPredictor{base: newHTTPBase(cfg), attempts: attempts}
}

type predictReq struct {
	Schema   int                `json:"schema"`
	Features map[string]float64 `json:"features"`
}

type predictResp struct {
	Strain        string             `json:"strain"`
	Category      string             `json:"category"`
	ProbStrain    float64            `json:"prob_strain"`
	ProbCategory  float64            `json:"prob_category"`
	StrainProbs   map[string]float64 `json:"strain_probs"`
	CategoryProbs map[string]float64 `json:"category_probs"`
}

func (p *HTTPPredictor) Predict(ctx context.Context, features *models.FeatureRecord) (models.Prediction, error) {
	var result models.Prediction
	var pr predictResp
	req := predictReq{Schema: models.FeatureSchemaVersion, Features: features.Map()}
	if err := p.base.postJSONWithRetry(ctx, "/classify", req, &pr, p.attempts); err != nil {
		return result, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	strain, ok := parseStrain(pr.Strain)
	if !ok {
		return result, fmt.Errorf("classifier response: unknown strain %q", pr.Strain)
	}
	category, ok := parseCategory(pr.Category)
	if !ok {
		return result, fmt.Errorf("classifier response: unknown category %q", pr.Category)
	}

	result.Strain = strain
	result.Category = category
	result.ProbStrain = pr.ProbStrain
	result.ProbCategory = pr.ProbCategory
	if len(pr.StrainProbs) > 0 {
		result.StrainProbs = make(map[models.Strain]float64, len(pr.StrainProbs))
		for k, v := range pr.StrainProbs {
			s, ok := parseStrain(k)
			if !ok {
				return models.Prediction{}, fmt.Errorf("classifier response: unknown strain %q", k)
			}
			result.StrainProbs[s] = v
		}
	}
	if len(pr.CategoryProbs) > 0 {
		result.CatProbs = make(map[models.LevelCategory]float64, len(pr.CategoryProbs))
		for k, v := range pr.CategoryProbs {
			c, ok := parseCategory(k)
			if !ok {
				return models.Prediction{}, fmt.Errorf("classifier response: unknown category %q", k)
			}
			result.CatProbs[c] = v
		}
	}
	return result, nil
}

func parseStrain(s string) (models.Strain, bool) {
	for _, known := range models.Strains {
		if s == string(known) {
			return known, true
		}
	}
	return "", false
}

func parseCategory(s string) (models.LevelCategory, bool) {
	for _, known := range models.Categories {
		if s == string(known) {
			return known, true
		}
	}
	return "", false
}

var _ domsvc.ContractClassifier = (*HTTPPredictor)(nil)
