package models

import (
	"fmt"
	"strings"
)

// Strain is the trump suit of a contract, or no-trump.
type Strain string

const (
	StrainSpades   Strain = "S"
	StrainHearts   Strain = "H"
	StrainDiamonds Strain = "D"
	StrainClubs    Strain = "C"
	StrainNoTrump  Strain = "NT"
)

// Strains lists all strains in the index order used by the search space
// and the scoring table: S, H, D, C, NT.
var Strains = [5]Strain{StrainSpades, StrainHearts, StrainDiamonds, StrainClubs, StrainNoTrump}

// IsMajor reports whether the strain is a major suit.
func (s Strain) IsMajor() bool { return s == StrainSpades || s == StrainHearts }

// IsMinor reports whether the strain is a minor suit.
func (s Strain) IsMinor() bool { return s == StrainDiamonds || s == StrainClubs }

// LevelCategory buckets a contract by its bonus tier.
type LevelCategory string

const (
	CategoryPartial   LevelCategory = "Partial"
	CategoryGame      LevelCategory = "Game"
	CategorySlam      LevelCategory = "Slam"
	CategoryGrandSlam LevelCategory = "Grand Slam"
)

// Categories lists the level categories from lowest to highest tier.
var Categories = [4]LevelCategory{CategoryPartial, CategoryGame, CategorySlam, CategoryGrandSlam}

// Contract is a (level, strain) bid such as 4S or 3NT.
type Contract struct {
	Level  int
	Strain Strain
}

func (c Contract) String() string { return fmt.Sprintf("%d%s", c.Level, c.Strain) }

// MalformedContractError reports an unparsable contract string.
type MalformedContractError struct {
	Input string
}

func (e *MalformedContractError) Error() string {
	return fmt.Sprintf("malformed contract %q", e.Input)
}

// ParseContract parses strings like "2H", "3NT", "7N".
func ParseContract(s string) (Contract, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) < 2 {
		return Contract{}, &MalformedContractError{Input: s}
	}
	level := int(t[0] - '0')
	if level < 1 || level > 7 {
		return Contract{}, &MalformedContractError{Input: s}
	}
	var strain Strain
	switch t[1:] {
	case "S":
		strain = StrainSpades
	case "H":
		strain = StrainHearts
	case "D":
		strain = StrainDiamonds
	case "C":
		strain = StrainClubs
	case "N", "NT":
		strain = StrainNoTrump
	default:
		return Contract{}, &MalformedContractError{Input: s}
	}
	return Contract{Level: level, Strain: strain}, nil
}

// Valid reports whether level and strain are within contract bounds.
func (c Contract) Valid() bool {
	if c.Level < 1 || c.Level > 7 {
		return false
	}
	switch c.Strain {
	case StrainSpades, StrainHearts, StrainDiamonds, StrainClubs, StrainNoTrump:
		return true
	default:
		return false
	}
}

// Category maps the contract to its bonus tier: 7 is grand slam, 6 slam,
// majors make game from 4, NT from 3, minors from 5; everything else partial.
func (c Contract) Category() LevelCategory {
	switch {
	case c.Level == 7:
		return CategoryGrandSlam
	case c.Level == 6:
		return CategorySlam
	case c.Strain.IsMajor() && c.Level >= 4:
		return CategoryGame
	case c.Strain == StrainNoTrump && c.Level >= 3:
		return CategoryGame
	case c.Strain.IsMinor() && c.Level >= 5:
		return CategoryGame
	default:
		return CategoryPartial
	}
}

// ExpectedScore returns the static contract score: minor tricks 20/level,
// major tricks 30/level, NT 30/level+10, plus the tier bonus
// (partial 50, game 300, slam 500, grand slam 1000).
func (c Contract) ExpectedScore() int {
	var trickScore int
	switch {
	case c.Strain.IsMinor():
		trickScore = c.Level * 20
	case c.Strain.IsMajor():
		trickScore = c.Level * 30
	default:
		trickScore = c.Level*30 + 10
	}
	switch c.Category() {
	case CategoryPartial:
		return trickScore + 50
	case CategoryGame:
		return trickScore + 300
	case CategorySlam:
		return trickScore + 500
	default:
		return trickScore + 1000
	}
}
