package features

import (
	"sort"

	"BidSnapper/internal/domain/models"
)

// Extract builds the FeatureRecord for a partnership. Hands are expected to
// be validated at the boundary; malformed input is still rejected here so the
// extractor stays total over whatever it is handed.
func Extract(hand1, hand2 models.Hand) (*models.FeatureRecord, error) {
	if err := hand1.Validate(); err != nil {
		return nil, err
	}
	if err := hand2.Validate(); err != nil {
		return nil, err
	}
	if shared := models.SharedCards(hand1, hand2); len(shared) > 0 {
		return nil, &models.MalformedHandError{Reason: "card " + shared[0].String() + " held by both hands"}
	}

	combined := make(models.Hand, 0, 2*models.HandSize)
	combined = append(combined, hand1...)
	combined = append(combined, hand2...)

	f := &models.FeatureRecord{}
	for i, s := range models.Suits {
		held := combined.SuitCards(s)
		f.SuitLength[i] = len(held)
		f.SuitHCP[i] = hcpOf(held)
		f.HCP += f.SuitHCP[i]
		f.Stopper[i] = stopperGrade(held)
		f.HonorWeight[i] = HonorWeight(hand1.SuitCards(s)) + HonorWeight(hand2.SuitCards(s))
		f.HonorPower += f.HonorWeight[i]
		f.LTC += losingTricks(held)
		f.RangeLow[i] = maxInt(0, f.SuitLength[i]-1)
		f.RangeHigh[i] = minInt(13, f.SuitLength[i]+1)
	}

	f.Balance1 = Classify(hand1.SuitLengths())
	f.Balance2 = Classify(hand2.SuitLengths())
	f.Controls = controls(hand1) + controls(hand2)
	f.QuickTricks = QuickTricks(hand1) + QuickTricks(hand2)
	return f, nil
}

func hcpOf(ranks []models.Rank) int {
	total := 0
	for _, r := range ranks {
		total += r.HCP()
	}
	return total
}

// HonorWeight scores one hand's holding in a suit by which of the top three
// honors it holds. The classes are mutually exclusive, first match wins;
// jacks never contribute (unlike raw HCP).
func HonorWeight(ranks []models.Rank) float64 {
	var a, k, q bool
	for _, r := range ranks {
		switch r {
		case models.Ace:
			a = true
		case models.King:
			k = true
		case models.Queen:
			q = true
		}
	}
	switch {
	case a && k && q:
		return 3.0
	case a && k:
		return 2.0
	case a && q:
		return 1.5
	case a:
		return 1.0
	case k && q:
		return 1.0
	case k:
		return 0.5
	case q:
		return 0.25
	default:
		return 0.0
	}
}

// Classify maps one hand's four suit lengths to a balance class.
// Rules are checked in the order listed; the first match wins.
func Classify(lengths [4]int) models.Balance {
	sorted := make([]int, 4)
	copy(sorted, lengths[:])
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	match := func(p [4]int) bool {
		return sorted[0] == p[0] && sorted[1] == p[1] && sorted[2] == p[2] && sorted[3] == p[3]
	}
	hasLen := func(n int) bool {
		for _, l := range sorted {
			if l == n {
				return true
			}
		}
		return false
	}

	switch {
	case match([4]int{4, 3, 3, 3}):
		return models.Balance{Category: models.Balanced, Severity: 0.0}
	case match([4]int{4, 4, 3, 2}), match([4]int{5, 3, 3, 2}):
		return models.Balance{Category: models.SemiBalanced, Severity: 0.25}
	case match([4]int{5, 4, 2, 2}):
		return models.Balance{Category: models.SemiBalanced, Severity: 0.5}
	case hasLen(6):
		// 6-3-2-2 is notated the same as any other 6-card shape here.
		return models.Balance{Category: models.Unbalanced, Severity: 0.75}
	case sorted[0] >= 7:
		return models.Balance{Category: models.VeryUnbalanced, Severity: 1.0}
	case hasLen(1):
		return models.Balance{Category: models.Unbalanced, Severity: 0.8}
	case hasLen(0):
		return models.Balance{Category: models.Unbalanced, Severity: 1.0}
	default:
		return models.Balance{Category: models.Unbalanced, Severity: 0.6}
	}
}

// stopperGrade grades the combined holding in a suit:
// 3 ace, 2 protected K/Q, 1 bare K or thin Q, 0 nothing (or void).
func stopperGrade(ranks []models.Rank) int {
	if len(ranks) == 0 {
		return 0
	}
	var k, q bool
	for _, r := range ranks {
		switch r {
		case models.Ace:
			return 3
		case models.King:
			k = true
		case models.Queen:
			q = true
		}
	}
	if k {
		if len(ranks) > 1 {
			return 2
		}
		return 1
	}
	if q {
		if len(ranks) > 2 {
			return 2
		}
		return 1
	}
	return 0
}

// losingTricks estimates losers for one suit holding from its top three cards.
func losingTricks(ranks []models.Rank) float64 {
	switch len(ranks) {
	case 0:
		return 0
	case 1:
		if ranks[0] == models.Ace {
			return 1
		}
		return 2
	case 2:
		a, k := hasRank(ranks[:2], models.Ace), hasRank(ranks[:2], models.King)
		switch {
		case a && k:
			return 0
		case a || k:
			return 1
		default:
			return 2
		}
	default:
		top := ranks[:3]
		missing := 0
		for _, r := range []models.Rank{models.Ace, models.King, models.Queen} {
			if !hasRank(top, r) {
				missing++
			}
		}
		if missing > 3 {
			missing = 3
		}
		return float64(missing)
	}
}

func hasRank(ranks []models.Rank, want models.Rank) bool {
	for _, r := range ranks {
		if r == want {
			return true
		}
	}
	return false
}

// controls counts aces double and kings single for one hand.
func controls(h models.Hand) int {
	n := 0
	for _, c := range h {
		switch c.Rank {
		case models.Ace:
			n += 2
		case models.King:
			n++
		}
	}
	return n
}

// QuickTricks sums the per-suit quick-trick estimate for one hand:
// AK 2.0, bare A 1.0, KQ without the ace 1.0, lone K 0.5.
func QuickTricks(h models.Hand) float64 {
	total := 0.0
	for _, s := range models.Suits {
		ranks := h.SuitCards(s)
		a := hasRank(ranks, models.Ace)
		k := hasRank(ranks, models.King)
		q := hasRank(ranks, models.Queen)
		switch {
		case a && k:
			total += 2.0
		case a:
			total += 1.0
		case k && q:
			total += 1.0
		case k:
			total += 0.5
		}
	}
	return total
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
