package conventions

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/pkg/cache"
)

// CachedAdvisor caches convention advice. The same hand and strategy always
// produce the same bid, so entries only expire to bound memory.
type CachedAdvisor struct {
	inner domsvc.ConventionAdvisor
	store cache.Service
	ttl   time.Duration
}

func NewCachedAdvisor(inner domsvc.ConventionAdvisor, store cache.Service, ttl time.Duration) *CachedAdvisor {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedAdvisor{inner: inner, store: store, ttl: ttl}
}

func adviceKey(hand models.Hand, strategy string) string {
	cards := make([]string, len(hand))
	for i, c := range hand {
		cards[i] = c.String()
	}
	sort.Strings(cards)
	return cache.GenerateKeyWithParams("convention", strategy, cache.HashKey(strings.Join(cards, ",")))
}

func (a *CachedAdvisor) Suggest(ctx context.Context, hand models.Hand, strategy string) (models.ConventionAdvice, error) {
	key := adviceKey(hand, strategy)

	// Entries are stored as JSON strings so every cache layer round-trips them.
	var raw string
	if err := a.store.Get(ctx, key, &raw); err == nil {
		var cached models.ConventionAdvice
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	advice, err := a.inner.Suggest(ctx, hand, strategy)
	if err != nil {
		return models.ConventionAdvice{}, err
	}
	if b, err := json.Marshal(advice); err == nil {
		_ = a.store.Set(ctx, key, string(b), a.ttl)
	}
	return advice, nil
}

var _ domsvc.ConventionAdvisor = (*CachedAdvisor)(nil)
