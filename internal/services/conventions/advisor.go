package conventions

import (
	"context"
	"fmt"
	"sort"

	"BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
)

type strategyFunc func(shape) string

var strategies = map[string]strategyFunc{
	"prec_opening":    precOpening,
	"prec_respon_1c":  precRespond1C,
	"prec_respon_1d":  precRespond1D,
	"prec_respon_1h":  precRespond1H,
	"prec_respon_1s":  precRespond1S,
	"prec_respon_1nt": precRespond1NT,
	"prec_respon_2c":  precRespond2C,
	"prec_respon_2d":  precRespond2D,
	"prec_respon_2h":  precRespond2H,
	"prec_respon_2s":  precRespond2S,
}

// Strategies lists the registered strategy names in sorted order.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Advisor resolves strategy names against the registered bidding tables.
type Advisor struct{}

func NewAdvisor() *Advisor { return &Advisor{} }

func (a *Advisor) Suggest(_ context.Context, hand models.Hand, strategy string) (models.ConventionAdvice, error) {
	if err := hand.Validate(); err != nil {
		return models.ConventionAdvice{}, err
	}
	fn, ok := strategies[strategy]
	if !ok {
		return models.ConventionAdvice{}, fmt.Errorf("unknown bidding strategy %q", strategy)
	}
	sh := analyze(hand)
	return models.ConventionAdvice{
		Strategy:     strategy,
		Bid:          fn(sh),
		HCP:          sh.hcp,
		Distribution: sh.distribution(),
	}, nil
}

var _ domsvc.ConventionAdvisor = (*Advisor)(nil)
