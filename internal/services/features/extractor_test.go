package features

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"BidSnapper/internal/domain/models"
)

func mustHand(t *testing.T, tokens ...string) models.Hand {
	t.Helper()
	h, err := models.ParseHand(tokens)
	if err != nil {
		t.Fatalf("parse hand: %v", err)
	}
	return h
}

func TestExtractMajorsDeal(t *testing.T) {
	h1 := mustHand(t, "AS", "KS", "QS", "JS", "TS", "9H", "8H", "7H", "6D", "5D", "4D", "3C", "2C")
	h2 := mustHand(t, "AH", "KH", "QH", "JH", "TH", "9S", "8S", "7S", "6C", "5C", "4C", "3D", "2D")

	f, err := Extract(h1, h2)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if f.HCP != 20 {
		t.Fatalf("hcp = %d, want 20", f.HCP)
	}
	if got := f.SuitLength; got != [4]int{8, 8, 5, 5} {
		t.Fatalf("suit lengths = %v, want [8 8 5 5]", got)
	}
	sum := 0
	for _, n := range f.SuitLength {
		sum += n
	}
	if sum != 26 {
		t.Fatalf("suit lengths sum = %d, want 26", sum)
	}
	// AKQ of spades all in hand1: richest honor class.
	if f.HonorWeight[0] != 3.0 {
		t.Fatalf("spade honor weight = %v, want 3.0", f.HonorWeight[0])
	}
	// Two aces and two kings across both hands.
	if f.Controls != 6 {
		t.Fatalf("controls = %d, want 6", f.Controls)
	}
}

func TestExtractDeterministic(t *testing.T) {
	h1 := mustHand(t, "AS", "KH", "QD", "JC", "TS", "9H", "8D", "7C", "6S", "5H", "4D", "3C", "2S")
	h2 := mustHand(t, "AD", "KD", "QH", "JH", "TH", "9D", "8H", "7D", "6C", "5S", "4H", "3D", "2C")

	a, err := Extract(h1, h2)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	b, err := Extract(h1, h2)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("extract not deterministic:\n%+v\n%+v", a, b)
	}
	if got, want := len(a.Vector()), len(models.FeatureNames); got != want {
		t.Fatalf("vector len = %d, want %d", got, want)
	}
}

func TestExtractRejectsMalformed(t *testing.T) {
	h1 := mustHand(t, "AS", "KS", "QS", "JS", "TS", "9H", "8H", "7H", "6D", "5D", "4D", "3C", "2C")
	short := models.Hand{{Rank: models.Ace, Suit: models.Hearts}}
	if _, err := Extract(h1, short); err == nil {
		t.Fatal("expected malformed hand error")
	}
	dup := make(models.Hand, 13)
	for i := range dup {
		dup[i] = models.Card{Rank: models.Ace, Suit: models.Clubs}
	}
	if _, err := Extract(dup, h1); err == nil {
		t.Fatal("expected duplicate card error")
	}
}

func TestExtractRejectsSharedCards(t *testing.T) {
	// Both hands claim the ace of spades; each hand is well formed on its own.
	h1 := mustHand(t, "AS", "KS", "QS", "JS", "TS", "9H", "8H", "7H", "6D", "5D", "4D", "3C", "2C")
	h2 := mustHand(t, "AS", "KH", "QH", "JH", "TH", "9S", "8S", "7S", "6C", "5C", "4C", "3D", "2D")

	_, err := Extract(h1, h2)
	if err == nil {
		t.Fatal("expected shared card error")
	}
	var malformed *models.MalformedHandError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedHandError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "AS") {
		t.Fatalf("error does not name the shared card: %v", err)
	}
}

func TestHonorWeightClasses(t *testing.T) {
	cases := []struct {
		ranks []models.Rank
		want  float64
	}{
		{[]models.Rank{models.Ace, models.King, models.Queen}, 3.0},
		{[]models.Rank{models.Ace, models.King, '2'}, 2.0},
		{[]models.Rank{models.Ace, models.Queen}, 1.5},
		{[]models.Rank{models.Ace, models.Jack}, 1.0}, // jack never counts
		{[]models.Rank{models.King, models.Queen}, 1.0},
		{[]models.Rank{models.King, '7', '3'}, 0.5},
		{[]models.Rank{models.Queen}, 0.25},
		{[]models.Rank{models.Jack, models.Ten, '9'}, 0.0},
		{nil, 0.0},
	}
	for _, tc := range cases {
		if got := HonorWeight(tc.ranks); got != tc.want {
			t.Fatalf("HonorWeight(%v) = %v, want %v", tc.ranks, got, tc.want)
		}
	}
}

func TestClassifyBalance(t *testing.T) {
	cases := []struct {
		lengths  [4]int
		category models.BalanceCategory
		severity float64
	}{
		{[4]int{4, 3, 3, 3}, models.Balanced, 0.0},
		{[4]int{2, 4, 3, 4}, models.SemiBalanced, 0.25},
		{[4]int{5, 3, 3, 2}, models.SemiBalanced, 0.25},
		{[4]int{5, 4, 2, 2}, models.SemiBalanced, 0.5},
		{[4]int{6, 3, 2, 2}, models.Unbalanced, 0.75},
		{[4]int{7, 3, 2, 1}, models.VeryUnbalanced, 1.0},
		{[4]int{5, 4, 3, 1}, models.Unbalanced, 0.8},
		{[4]int{5, 4, 4, 0}, models.Unbalanced, 1.0},
	}
	for _, tc := range cases {
		got := Classify(tc.lengths)
		if got.Category != tc.category || got.Severity != tc.severity {
			t.Fatalf("Classify(%v) = %+v, want %s/%v", tc.lengths, got, tc.category, tc.severity)
		}
	}
}

func TestQuickTricks(t *testing.T) {
	// AK of spades (2.0), A of hearts (1.0), KQ of diamonds (1.0), K of clubs (0.5).
	h := mustHand(t, "AS", "KS", "AH", "KD", "QD", "KC", "2S", "3S", "4H", "5H", "6D", "7C", "8C")
	if got := QuickTricks(h); got != 4.5 {
		t.Fatalf("quick tricks = %v, want 4.5", got)
	}
}
