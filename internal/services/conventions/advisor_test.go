package conventions

import (
	"context"
	"testing"

	"BidSnapper/internal/domain/models"
)

// suitHand builds a hand from per-suit rank strings in SHDC order.
func suitHand(t *testing.T, spades, hearts, diamonds, clubs string) models.Hand {
	t.Helper()
	tokens := make([]string, 0, models.HandSize)
	for _, part := range []struct {
		ranks string
		suit  string
	}{
		{spades, "S"}, {hearts, "H"}, {diamonds, "D"}, {clubs, "C"},
	} {
		for _, r := range part.ranks {
			tokens = append(tokens, string(r)+part.suit)
		}
	}
	h, err := models.ParseHand(tokens)
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	return h
}

func TestPrecisionOpening(t *testing.T) {
	tests := []struct {
		name     string
		spades   string
		hearts   string
		diamonds string
		clubs    string
		want     string
	}{
		{"balanced 16 opens 1NT", "AQ32", "KQ4", "K32", "Q32", "1NT"},
		{"limited with five spades opens 1S", "AKQ32", "432", "K32", "42", "1S"},
		{"18 unbalanced opens 1C", "AKQ2", "AKQ3", "432", "32", "1C"},
		{"big balanced 22 opens 2D", "AKQ2", "AK3", "A32", "Q32", "2D"},
		{"weak two-suiter opens 2H", "2", "KQ432", "QJ432", "32", "2H"},
		{"flat yarborough passes", "5432", "432", "432", "Q32", "Pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := analyze(suitHand(t, tt.spades, tt.hearts, tt.diamonds, tt.clubs))
			if got := precOpening(sh); got != tt.want {
				t.Fatalf("precOpening = %q, want %q (hcp=%d dist=%s)", got, tt.want, sh.hcp, sh.distribution())
			}
		})
	}
}

func TestPrecisionResponses(t *testing.T) {
	tests := []struct {
		name     string
		fn       strategyFunc
		spades   string
		hearts   string
		diamonds string
		clubs    string
		want     string
	}{
		{"weak hand answers 1C with 1D", precRespond1C, "5432", "J32", "Q32", "432", "1D"},
		{"balanced 12 answers 1C with 2NT", precRespond1C, "Q43", "K432", "A32", "K32", "2NT"},
		{"five hearts transfers over 1NT", precRespond1NT, "432", "KQ432", "A32", "32", "2D"},
		{"four-card major uses stayman over 1NT", precRespond1NT, "KQ32", "432", "A32", "K32", "2C"},
		{"heart support raises 1H to 2H", precRespond1H, "432", "K32", "Q432", "Q32", "2H"},
		{"spade support drives 1S to game", precRespond1S, "KQ32", "A32", "K432", "32", "4S"},
		{"rule of seventeen accepts over 2D", precRespond2D, "AK32", "K32", "A432", "32", "2NT"},
		{"rule of seventeen declines over 2D", precRespond2D, "Q432", "K32", "Q432", "32", "Pass"},
		{"eight points answer 2H with 2S", precRespond2H, "K432", "Q32", "A32", "432", "2S"},
		{"weak hand passes over 2S", precRespond2S, "5432", "432", "Q32", "J32", "Pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := analyze(suitHand(t, tt.spades, tt.hearts, tt.diamonds, tt.clubs))
			if got := tt.fn(sh); got != tt.want {
				t.Fatalf("response = %q, want %q (hcp=%d dist=%s)", got, tt.want, sh.hcp, sh.distribution())
			}
		})
	}
}

func TestAdvisorSuggest(t *testing.T) {
	adv := NewAdvisor()
	hand := suitHand(t, "AQ32", "KQ4", "K32", "Q32")

	advice, err := adv.Suggest(context.Background(), hand, "prec_opening")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if advice.Bid != "1NT" {
		t.Fatalf("bid = %q, want 1NT", advice.Bid)
	}
	if advice.HCP != 16 {
		t.Fatalf("hcp = %d, want 16", advice.HCP)
	}
	if advice.Distribution != "4333" {
		t.Fatalf("distribution = %q, want 4333", advice.Distribution)
	}
}

func TestAdvisorUnknownStrategy(t *testing.T) {
	adv := NewAdvisor()
	hand := suitHand(t, "AQ32", "KQ4", "K32", "Q32")
	if _, err := adv.Suggest(context.Background(), hand, "sayc_opening"); err == nil {
		t.Fatal("expected error for unregistered strategy")
	}
}

func TestAdvisorRejectsShortHand(t *testing.T) {
	adv := NewAdvisor()
	short, err := models.ParseHand([]string{"AS"})
	if err == nil {
		t.Fatal("expected parse error for short hand")
	}
	if _, err := adv.Suggest(context.Background(), short, "prec_opening"); err == nil {
		t.Fatal("expected validation error")
	}
	if len(Strategies()) != 10 {
		t.Fatalf("expected 10 registered strategies, got %d", len(Strategies()))
	}
}
