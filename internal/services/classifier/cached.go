package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/internal/service/cache"
)

// CachedPredictor memoizes predictions keyed by the feature vector. Cache
// failures are treated as misses so the inner predictor stays authoritative.
type CachedPredictor struct {
	inner domsvc.ContractClassifier
	store cache.BytesCache
	ttl   time.Duration
}

func NewCachedPredictor(inner domsvc.ContractClassifier, store cache.BytesCache, ttl time.Duration) *CachedPredictor {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedPredictor{inner: inner, store: store, ttl: ttl}
}

func (p *CachedPredictor) Predict(ctx context.Context, f *models.FeatureRecord) (models.Prediction, error) {
	key := predictionKey(f)
	if b, ok, err := p.store.GetBytes(key); err == nil && ok {
		var cached models.Prediction
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	pred, err := p.inner.Predict(ctx, f)
	if err != nil {
		return pred, err
	}
	if b, err := json.Marshal(pred); err == nil {
		_ = p.store.SetBytes(key, b, p.ttl)
	}
	return pred, nil
}

func predictionKey(f *models.FeatureRecord) string {
	h := sha256.New()
	for _, v := range f.Vector() {
		fmt.Fprintf(h, "%.6f;", v)
	}
	return "classifier:predict:" + hex.EncodeToString(h.Sum(nil)[:16])
}

var _ domsvc.ContractClassifier = (*CachedPredictor)(nil)
