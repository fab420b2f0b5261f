package service

import (
	"context"

	"BidSnapper/internal/domain/models"
)

// ContractClassifier predicts the most promising strain and level category
// for an extracted partnership feature record.
type ContractClassifier interface {
	Predict(ctx context.Context, features *models.FeatureRecord) (models.Prediction, error)
}

// ConventionAdvisor suggests a system bid for a single hand under a named
// bidding strategy.
type ConventionAdvisor interface {
	Suggest(ctx context.Context, hand models.Hand, strategy string) (models.ConventionAdvice, error)
}

// Recommender produces a final contract recommendation for a partnership.
type Recommender interface {
	Recommend(ctx context.Context, hand1, hand2 models.Hand, opts models.RecommendOptions) (models.FinalRecommendation, error)
}
