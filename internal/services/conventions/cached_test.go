package conventions

import (
	"context"
	"testing"
	"time"

	"BidSnapper/internal/domain/models"
	"BidSnapper/pkg/cache"
)

type countingAdvisor struct {
	inner *Advisor
	calls int
}

func (a *countingAdvisor) Suggest(ctx context.Context, hand models.Hand, strategy string) (models.ConventionAdvice, error) {
	a.calls++
	return a.inner.Suggest(ctx, hand, strategy)
}

func TestCachedAdvisor(t *testing.T) {
	hand := suitHand(t, "AQ32", "KQ4", "K32", "Q32")
	inner := &countingAdvisor{inner: NewAdvisor()}
	cached := NewCachedAdvisor(inner, cache.NewMemoryCache(), time.Minute)

	first, err := cached.Suggest(context.Background(), hand, "prec_opening")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	second, err := cached.Suggest(context.Background(), hand, "prec_opening")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner advisor called %d times, want 1", inner.calls)
	}
	if first != second {
		t.Fatalf("cached advice %+v differs from original %+v", second, first)
	}
}

func TestCachedAdvisorPropagatesErrors(t *testing.T) {
	hand := suitHand(t, "AQ32", "KQ4", "K32", "Q32")
	cached := NewCachedAdvisor(NewAdvisor(), cache.NewMemoryCache(), time.Minute)

	if _, err := cached.Suggest(context.Background(), hand, "nope"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
