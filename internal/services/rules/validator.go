// Package rules scores candidate contracts against bidding theory and
// produces human-readable justifications. It is pure: no state, no I/O.
package rules

import (
	"fmt"

	"BidSnapper/internal/domain/models"
)

// Rule thresholds. One canonical table is applied everywhere; the
// confidence step per violated rule is a design parameter.
const (
	confidenceStep = 0.15

	level1MinHCP = 15
	level2MinHCP = 20

	ntGameMinHCP    = 24
	majorGameMinHCP = 24
	minorGameMinHCP = 27

	gameSuitMinLength = 8

	ntMaxLTC    = 8.0
	majorMaxLTC = 7.0
	minorMaxLTC = 6.0

	slamMinHCP        = 32
	slamMinHonor      = 7.0
	grandSlamMinHCP   = 37
	grandSlamMinHonor = 8.0

	majorAdvisoryMinHCP    = 22
	majorAdvisoryMinLength = 8
)

// ValidateString parses a raw contract string and validates it.
// Unparsable input fails with MalformedContractError; everything else
// yields a ValidationResult, possibly invalid.
func ValidateString(f *models.FeatureRecord, raw string) (models.ValidationResult, error) {
	c, err := models.ParseContract(raw)
	if err != nil {
		return models.ValidationResult{}, err
	}
	return Validate(f, c), nil
}

// Validate checks one candidate contract against the rule table. Every
// violated rule appends one reason and costs a fixed confidence step;
// suggestions are advisory and never lower confidence.
func Validate(f *models.FeatureRecord, c models.Contract) models.ValidationResult {
	if !c.Valid() {
		return models.ValidationResult{
			Contract:   c,
			Valid:      false,
			Confidence: 0.0,
			Reasons:    []string{fmt.Sprintf("contract %s is out of bounds", c)},
		}
	}

	var reasons, suggestions []string
	hcp := f.HCP

	// Level-vs-HCP floors for partial bids.
	if c.Level == 1 && hcp < level1MinHCP {
		reasons = append(reasons, fmt.Sprintf("level 1 requires at least %d combined HCP, have %d", level1MinHCP, hcp))
	}
	if c.Level == 2 && hcp < level2MinHCP {
		reasons = append(reasons, fmt.Sprintf("level 2 requires at least %d combined HCP, have %d", level2MinHCP, hcp))
	}

	// Game-zone requirements.
	if c.Level >= 3 {
		switch {
		case c.Strain == models.StrainNoTrump:
			if hcp < ntGameMinHCP {
				reasons = append(reasons, fmt.Sprintf("no-trump game needs %d+ HCP, have %d", ntGameMinHCP, hcp))
				suggestions = append(suggestions, "raise only with extra values from partner")
			}
			if f.StopperCount() < 4 {
				reasons = append(reasons, "missing a stopper in at least one suit for no-trump")
				suggestions = append(suggestions, "consider a suit contract or bid conservatively")
			}
			if suitsWithHonor(f, 1.0) < 3 {
				reasons = append(reasons, "fewer than three suits carry real honor strength for no-trump")
			}
		case c.Strain.IsMajor():
			if hcp < majorGameMinHCP {
				reasons = append(reasons, fmt.Sprintf("major-suit game needs %d+ HCP, have %d", majorGameMinHCP, hcp))
				suggestions = append(suggestions, "ensure partner brings extra HCP")
			}
			if f.LengthOf(c.Strain) < gameSuitMinLength {
				reasons = append(reasons, fmt.Sprintf("only %d combined %s cards, need %d+ for a trump fit", f.LengthOf(c.Strain), c.Strain, gameSuitMinLength))
			}
			if f.HonorWeightOf(c.Strain) < 1.0 {
				reasons = append(reasons, fmt.Sprintf("trump suit %s lacks honor strength", c.Strain))
			}
		default: // minors
			if hcp < minorGameMinHCP {
				reasons = append(reasons, fmt.Sprintf("minor-suit game needs %d+ HCP, have %d", minorGameMinHCP, hcp))
				suggestions = append(suggestions, "look for more HCP or better distribution")
			}
			if f.LengthOf(c.Strain) < gameSuitMinLength {
				reasons = append(reasons, fmt.Sprintf("only %d combined %s cards, need %d+ for a trump fit", f.LengthOf(c.Strain), c.Strain, gameSuitMinLength))
			}
		}

		// Level/strain legality: bidding below the game level of the strain
		// is reported, never hard-rejected.
		if c.Level < 6 {
			if c.Strain.IsMajor() && c.Level == 3 {
				reasons = append(reasons, "major-suit game starts at level 4")
			}
			if c.Strain.IsMinor() && c.Level < 5 {
				reasons = append(reasons, "minor-suit game starts at level 5")
			}
		}

		// Losing-trick ceilings.
		switch {
		case c.Strain == models.StrainNoTrump && f.LTC > ntMaxLTC:
			reasons = append(reasons, fmt.Sprintf("losing trick count %.1f too high for no-trump", f.LTC))
			suggestions = append(suggestions, "prefer a partial contract or find extra stoppers")
		case c.Strain.IsMajor() && f.LTC > majorMaxLTC:
			reasons = append(reasons, fmt.Sprintf("losing trick count %.1f too high for a major-suit game", f.LTC))
			suggestions = append(suggestions, "prefer a partial contract or a stronger trump holding")
		case c.Strain.IsMinor() && f.LTC > minorMaxLTC:
			reasons = append(reasons, fmt.Sprintf("losing trick count %.1f too high for a minor-suit game", f.LTC))
			suggestions = append(suggestions, "prefer a partial contract")
		}
	}

	// Slam zones.
	if c.Level == 6 {
		if hcp < slamMinHCP {
			reasons = append(reasons, fmt.Sprintf("slam needs %d+ HCP, have %d", slamMinHCP, hcp))
			suggestions = append(suggestions, "settle for game without extra HCP")
		}
		if f.HonorPower < slamMinHonor {
			reasons = append(reasons, fmt.Sprintf("honor power %.2f below the %.0f needed for slam", f.HonorPower, slamMinHonor))
		}
	}
	if c.Level == 7 {
		if hcp < grandSlamMinHCP {
			reasons = append(reasons, fmt.Sprintf("grand slam needs %d+ HCP, have %d", grandSlamMinHCP, hcp))
			suggestions = append(suggestions, "grand slam is not recommended below 37 HCP")
		}
		if f.HonorPower < grandSlamMinHonor {
			reasons = append(reasons, fmt.Sprintf("honor power %.2f below the %.0f needed for grand slam", f.HonorPower, grandSlamMinHonor))
		}
	}

	// Advisory only: a big major fit ignored by a minor or NT choice.
	if c.Strain.IsMinor() || c.Strain == models.StrainNoTrump {
		if hcp >= majorAdvisoryMinHCP {
			for _, m := range []models.Strain{models.StrainSpades, models.StrainHearts} {
				if f.LengthOf(m) >= majorAdvisoryMinLength && f.HonorWeightOf(m) >= 1.0 {
					suggestions = append(suggestions, fmt.Sprintf("a %d-card %s fit suggests reconsidering 4%s", f.LengthOf(m), m, m))
					break
				}
			}
		}
	}

	confidence := 1.0 - confidenceStep*float64(len(reasons))
	if confidence < 0 {
		confidence = 0
	}
	return models.ValidationResult{
		Contract:    c,
		Valid:       len(reasons) == 0,
		Confidence:  confidence,
		Reasons:     reasons,
		Suggestions: suggestions,
	}
}

func suitsWithHonor(f *models.FeatureRecord, minWeight float64) int {
	n := 0
	for _, w := range f.HonorWeight {
		if w >= minWeight {
			n++
		}
	}
	return n
}
