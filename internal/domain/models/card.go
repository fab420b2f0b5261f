package models

import (
	"fmt"
	"sort"
	"strings"
)

// Suit identifies one of the four card suits.
type Suit byte

const (
	Spades   Suit = 'S'
	Hearts   Suit = 'H'
	Diamonds Suit = 'D'
	Clubs    Suit = 'C'
)

// Suits lists all suits in SHDC display order.
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) String() string { return string(s) }

// IsMajor reports whether the suit is spades or hearts.
func (s Suit) IsMajor() bool { return s == Spades || s == Hearts }

// Rank identifies a card rank. T is used for ten ("10" is accepted on parse).
type Rank byte

const (
	Ace   Rank = 'A'
	King  Rank = 'K'
	Queen Rank = 'Q'
	Jack  Rank = 'J'
	Ten   Rank = 'T'
)

// rankOrder maps ranks to sort priority, ace high first.
var rankOrder = map[Rank]int{
	'A': 0, 'K': 1, 'Q': 2, 'J': 3, 'T': 4,
	'9': 5, '8': 6, '7': 7, '6': 8, '5': 9, '4': 10, '3': 11, '2': 12,
}

// HCP returns high card points for the rank (A=4 K=3 Q=2 J=1).
func (r Rank) HCP() int {
	switch r {
	case Ace:
		return 4
	case King:
		return 3
	case Queen:
		return 2
	case Jack:
		return 1
	default:
		return 0
	}
}

// IsHonor reports whether the rank is A, K, Q or J.
func (r Rank) IsHonor() bool { return r.HCP() > 0 }

// Card is an immutable (rank, suit) value.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string { return string(c.Rank) + string(c.Suit) }

// ParseCard parses tokens like "AS", "TD" or "10D" (case-insensitive).
func ParseCard(s string) (Card, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) == 3 && strings.HasPrefix(t, "10") {
		t = "T" + t[2:]
	}
	if len(t) != 2 {
		return Card{}, fmt.Errorf("malformed card token %q", s)
	}
	r, su := Rank(t[0]), Suit(t[1])
	if _, ok := rankOrder[r]; !ok {
		return Card{}, fmt.Errorf("unknown rank in card token %q", s)
	}
	switch su {
	case Spades, Hearts, Diamonds, Clubs:
	default:
		return Card{}, fmt.Errorf("unknown suit in card token %q", s)
	}
	return Card{Rank: r, Suit: su}, nil
}

// HandSize is the number of cards a bridge hand holds.
const HandSize = 13

// Hand is a set of 13 unique cards. Order carries no meaning.
type Hand []Card

// MalformedHandError reports an input that is not a valid 13-card hand.
type MalformedHandError struct {
	Reason string
}

func (e *MalformedHandError) Error() string { return "malformed hand: " + e.Reason }

// ParseHand parses 13 card tokens into a Hand. It rejects wrong sizes,
// unknown tokens, and duplicate cards.
func ParseHand(tokens []string) (Hand, error) {
	if len(tokens) != HandSize {
		return nil, &MalformedHandError{Reason: fmt.Sprintf("expected %d cards, got %d", HandSize, len(tokens))}
	}
	seen := make(map[Card]struct{}, HandSize)
	h := make(Hand, 0, HandSize)
	for _, tok := range tokens {
		c, err := ParseCard(tok)
		if err != nil {
			return nil, &MalformedHandError{Reason: err.Error()}
		}
		if _, dup := seen[c]; dup {
			return nil, &MalformedHandError{Reason: "duplicate card " + c.String()}
		}
		seen[c] = struct{}{}
		h = append(h, c)
	}
	return h, nil
}

// Validate re-checks the 13-unique-cards invariant on an already built hand.
func (h Hand) Validate() error {
	if len(h) != HandSize {
		return &MalformedHandError{Reason: fmt.Sprintf("expected %d cards, got %d", HandSize, len(h))}
	}
	seen := make(map[Card]struct{}, HandSize)
	for _, c := range h {
		if _, dup := seen[c]; dup {
			return &MalformedHandError{Reason: "duplicate card " + c.String()}
		}
		seen[c] = struct{}{}
	}
	return nil
}

// SuitCards returns the ranks held in a suit, ace high first.
func (h Hand) SuitCards(s Suit) []Rank {
	out := make([]Rank, 0, 6)
	for _, c := range h {
		if c.Suit == s {
			out = append(out, c.Rank)
		}
	}
	sort.Slice(out, func(i, j int) bool { return rankOrder[out[i]] < rankOrder[out[j]] })
	return out
}

// SuitLengths returns card counts per suit in SHDC order.
func (h Hand) SuitLengths() [4]int {
	var n [4]int
	for _, c := range h {
		switch c.Suit {
		case Spades:
			n[0]++
		case Hearts:
			n[1]++
		case Diamonds:
			n[2]++
		case Clubs:
			n[3]++
		}
	}
	return n
}

// SortSHDC sorts cards in place by suit (S,H,D,C) then rank (ace high).
// Detected card lists are normalized this way before display and ingest.
func SortSHDC(cards []Card) {
	suitPrio := map[Suit]int{Spades: 0, Hearts: 1, Diamonds: 2, Clubs: 3}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return suitPrio[cards[i].Suit] < suitPrio[cards[j].Suit]
		}
		return rankOrder[cards[i].Rank] < rankOrder[cards[j].Rank]
	})
}

// SharedCards returns cards present in both hands. A valid deal has none.
func SharedCards(h1, h2 Hand) []Card {
	set := make(map[Card]struct{}, len(h1))
	for _, c := range h1 {
		set[c] = struct{}{}
	}
	var shared []Card
	for _, c := range h2 {
		if _, ok := set[c]; ok {
			shared = append(shared, c)
		}
	}
	return shared
}
