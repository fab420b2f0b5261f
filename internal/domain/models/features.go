package models

// BalanceCategory classifies a single hand's suit-length shape.
type BalanceCategory string

const (
	Balanced       BalanceCategory = "Balanced"
	SemiBalanced   BalanceCategory = "Semi-Balanced"
	Unbalanced     BalanceCategory = "Unbalanced"
	VeryUnbalanced BalanceCategory = "Very-Unbalanced"
)

// Balance pairs a category with a numeric severity in [0,1]
// (0 = flat 4-3-3-3, 1 = extreme shape).
type Balance struct {
	Category BalanceCategory `json:"category"`
	Severity float64         `json:"severity"`
}

// FeatureSchemaVersion identifies the feature vector layout. Bump whenever
// FeatureNames changes so downstream consumers can detect skew.
const FeatureSchemaVersion = 2

// FeatureNames is the canonical vector order. The first 24 entries match the
// layout of the training CSV; partnership honor features were appended in v2.
var FeatureNames = []string{
	"hcp", "hcp_spades", "hcp_hearts", "hcp_diamonds", "hcp_clubs",
	"dist_spades", "dist_hearts", "dist_diamonds", "dist_clubs",
	"balanced_hand1", "balanced_hand2",
	"stopper_spades", "stopper_hearts", "stopper_diamonds", "stopper_clubs",
	"ltc",
	"num_spades_low", "num_spades_high",
	"num_hearts_low", "num_hearts_high",
	"num_diamonds_low", "num_diamonds_high",
	"num_clubs_low", "num_clubs_high",
	"honor_spades", "honor_hearts", "honor_diamonds", "honor_clubs",
	"honor_power", "controls", "quick_tricks",
}

// FeatureRecord holds the deterministic features extracted from a partnership
// (two 13-card hands). It is built once per deal and never mutated.
// Array fields are indexed in SHDC order.
type FeatureRecord struct {
	HCP     int    `json:"hcp"`
	SuitHCP [4]int `json:"suit_hcp"`

	// SuitLength holds combined 26-card counts; the four entries sum to 26.
	SuitLength [4]int `json:"suit_length"`

	Balance1 Balance `json:"balance_hand1"`
	Balance2 Balance `json:"balance_hand2"`

	// Stopper is the per-suit stopper grade for the partnership:
	// 0 none, 1 thin (unprotected K/Q), 2 protected K/Q, 3 ace.
	Stopper [4]int `json:"stopper"`

	// HonorWeight is the non-linear per-suit honor score summed over
	// both hands; jacks never contribute.
	HonorWeight [4]float64 `json:"honor_weight"`
	HonorPower  float64    `json:"honor_power"`

	Controls    int     `json:"controls"`
	QuickTricks float64 `json:"quick_tricks"`
	LTC         float64 `json:"ltc"`

	// RangeLow/RangeHigh are count±1 tolerance bands clipped to [0,13].
	RangeLow  [4]int `json:"range_low"`
	RangeHigh [4]int `json:"range_high"`
}

// Vector flattens the record into FeatureNames order. Balance categories are
// emitted as their severities.
func (f *FeatureRecord) Vector() []float64 {
	v := make([]float64, 0, len(FeatureNames))
	v = append(v, float64(f.HCP))
	for i := 0; i < 4; i++ {
		v = append(v, float64(f.SuitHCP[i]))
	}
	for i := 0; i < 4; i++ {
		v = append(v, float64(f.SuitLength[i]))
	}
	v = append(v, f.Balance1.Severity, f.Balance2.Severity)
	for i := 0; i < 4; i++ {
		v = append(v, float64(f.Stopper[i]))
	}
	v = append(v, f.LTC)
	for i := 0; i < 4; i++ {
		v = append(v, float64(f.RangeLow[i]), float64(f.RangeHigh[i]))
	}
	for i := 0; i < 4; i++ {
		v = append(v, f.HonorWeight[i])
	}
	v = append(v, f.HonorPower, float64(f.Controls), f.QuickTricks)
	return v
}

// Map returns the named feature view used for JSON payloads to the
// classifier service.
func (f *FeatureRecord) Map() map[string]float64 {
	v := f.Vector()
	m := make(map[string]float64, len(v))
	for i, name := range FeatureNames {
		m[name] = v[i]
	}
	return m
}

// StopperCount returns how many suits hold a real stopper (grade >= 2).
func (f *FeatureRecord) StopperCount() int {
	n := 0
	for _, s := range f.Stopper {
		if s >= 2 {
			n++
		}
	}
	return n
}

// suitIndex maps a suit strain to its SHDC array slot.
func suitIndex(s Strain) int {
	switch s {
	case StrainSpades:
		return 0
	case StrainHearts:
		return 1
	case StrainDiamonds:
		return 2
	default:
		return 3
	}
}

// LengthOf returns the combined partnership length of a suit strain.
// NT has no trump length; it returns 0.
func (f *FeatureRecord) LengthOf(s Strain) int {
	if s == StrainNoTrump {
		return 0
	}
	return f.SuitLength[suitIndex(s)]
}

// HonorWeightOf returns the combined honor weight of a suit strain.
func (f *FeatureRecord) HonorWeightOf(s Strain) float64 {
	if s == StrainNoTrump {
		return 0
	}
	return f.HonorWeight[suitIndex(s)]
}

// StopperOf returns the stopper grade of a suit strain.
func (f *FeatureRecord) StopperOf(s Strain) int {
	if s == StrainNoTrump {
		return 0
	}
	return f.Stopper[suitIndex(s)]
}
