package usecase

import (
	"context"
	"time"

	"BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/internal/services/features"
	"BidSnapper/internal/services/rules"
	"BidSnapper/internal/services/search"
	applogger "BidSnapper/pkg/logger"
)

// RecommendEngine runs the full pipeline: feature extraction, the point
// prediction, the evolutionary candidate search and rule validation, then
// picks a single winner. A failing classifier degrades the run to search
// candidates only instead of failing it.
type RecommendEngine struct {
	classifier domsvc.ContractClassifier
	defaults   search.Config
	log        *applogger.Logger
}

func NewRecommendEngine(classifier domsvc.ContractClassifier, defaults search.Config, log *applogger.Logger) *RecommendEngine {
	return &RecommendEngine{classifier: classifier, defaults: defaults, log: log}
}

func (e *RecommendEngine) Recommend(ctx context.Context, hand1, hand2 models.Hand, opts models.RecommendOptions) (models.FinalRecommendation, error) {
	f, err := features.Extract(hand1, hand2)
	if err != nil {
		return models.FinalRecommendation{}, err
	}

	cfg := e.defaults
	if opts.Generations > 0 {
		cfg.Generations = opts.Generations
	}
	if opts.Population > 0 {
		cfg.Population = opts.Population
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}

	var pred *models.Prediction
	classifierDown := true
	if e.classifier != nil {
		p, err := e.classifier.Predict(ctx, f)
		if err != nil {
			e.log.Warn("classifier prediction failed, degrading to search only", applogger.Error(err))
		} else {
			pred = &p
			classifierDown = false
		}
	}

	candidates, err := search.Generate(f, pred, cfg)
	if err != nil {
		return models.FinalRecommendation{}, err
	}
	if pred != nil {
		point := models.CandidateContract{Contract: pred.Contract(), Source: models.SourceClassifier}
		candidates = append([]models.CandidateContract{point}, candidates...)
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoredCandidate{cand: c, val: rules.Validate(f, c.Contract)})
	}
	best := selectBest(scored)

	e.log.Info("contract recommended",
		applogger.String("contract", best.cand.Contract.String()),
		applogger.String("source", string(best.cand.Source)),
		applogger.Bool("valid", best.val.Valid),
		applogger.Any("confidence", best.val.Confidence),
	)

	return models.FinalRecommendation{
		Contract:       best.cand.Contract,
		Source:         best.cand.Source,
		Valid:          best.val.Valid,
		Confidence:     best.val.Confidence,
		Reasons:        best.val.Reasons,
		Suggestions:    best.val.Suggestions,
		Timestamp:      time.Now().UTC(),
		ClassifierDown: classifierDown,
	}, nil
}

var _ domsvc.Recommender = (*RecommendEngine)(nil)
