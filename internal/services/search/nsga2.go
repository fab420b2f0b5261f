// Package search proposes alternative contracts with an NSGA-II style
// multi-objective evolutionary search over strategy-weight genomes.
// Each Generate call owns its full population state, so independent deals
// can be searched concurrently without cross-talk.
package search

import (
	"math"
	"math/rand"
	"sort"

	"BidSnapper/internal/domain/models"
)

// Config tunes one search run. Zero values fall back to defaults.
type Config struct {
	Generations int
	Population  int
	Seed        int64
	FrontLimit  int
}

const (
	defaultGenerations = 50
	defaultPopulation  = 100
	defaultFrontLimit  = 3

	crossoverEta  = 15.0
	mutationEta   = 20.0
	crossoverProb = 0.9
)

type individual struct {
	genome   [models.WeightVectorDim]float64
	objs     [2]float64
	contract models.Contract
	rank     int
	crowding float64
}

// Generate runs the search and returns the Pareto-front contracts,
// de-duplicated and truncated to the configured display limit. The result
// is never empty for well-formed input, and runs are reproducible under
// the same seed. pred may be nil when the classifier is unavailable.
func Generate(f *models.FeatureRecord, pred *models.Prediction, cfg Config) ([]models.CandidateContract, error) {
	if f == nil {
		return nil, &SchemaMismatchError{Got: 0, Want: len(models.FeatureNames)}
	}
	if got := len(f.Vector()); got != len(models.FeatureNames) {
		return nil, &SchemaMismatchError{Got: got, Want: len(models.FeatureNames)}
	}
	if cfg.Generations <= 0 {
		cfg.Generations = defaultGenerations
	}
	if cfg.Population <= 0 {
		cfg.Population = defaultPopulation
	}
	if cfg.FrontLimit <= 0 {
		cfg.FrontLimit = defaultFrontLimit
	}

	p := &problem{features: f, pred: pred}
	rng := rand.New(rand.NewSource(cfg.Seed))

	pop := make([]individual, cfg.Population)
	for i := range pop {
		for d := 0; d < models.WeightVectorDim; d++ {
			pop[i].genome[d] = rng.Float64()
		}
		evaluate(p, &pop[i])
	}
	rankAndCrowd(pop)

	for gen := 0; gen < cfg.Generations; gen++ {
		offspring := makeOffspring(p, pop, rng)
		pop = survive(append(pop, offspring...), cfg.Population)
	}

	return frontCandidates(pop, cfg.FrontLimit), nil
}

// GenerateFromVector rebuilds a FeatureRecord from a stored flat vector
// before searching. Schema skew fails fast here.
func GenerateFromVector(values []float64, pred *models.Prediction, cfg Config) ([]models.CandidateContract, error) {
	f, err := fromVector(values)
	if err != nil {
		return nil, err
	}
	return Generate(f, pred, cfg)
}

func evaluate(p *problem, ind *individual) {
	ind.contract, ind.objs = p.evaluate(models.WeightVectorFrom(ind.genome))
}

// makeOffspring builds a full generation via binary tournaments, simulated
// binary crossover and polynomial mutation.
func makeOffspring(p *problem, pop []individual, rng *rand.Rand) []individual {
	out := make([]individual, 0, len(pop))
	for len(out) < len(pop) {
		a := tournament(pop, rng)
		b := tournament(pop, rng)
		c1, c2 := crossover(a.genome, b.genome, rng)
		mutate(&c1, rng)
		mutate(&c2, rng)
		i1 := individual{genome: c1}
		i2 := individual{genome: c2}
		evaluate(p, &i1)
		evaluate(p, &i2)
		out = append(out, i1, i2)
	}
	return out[:len(pop)]
}

// tournament picks the better of two random individuals by rank, breaking
// ties on crowding distance.
func tournament(pop []individual, rng *rand.Rand) *individual {
	a := &pop[rng.Intn(len(pop))]
	b := &pop[rng.Intn(len(pop))]
	if a.rank < b.rank {
		return a
	}
	if b.rank < a.rank {
		return b
	}
	if a.crowding > b.crowding {
		return a
	}
	return b
}

// crossover applies SBX per dimension.
func crossover(a, b [models.WeightVectorDim]float64, rng *rand.Rand) ([models.WeightVectorDim]float64, [models.WeightVectorDim]float64) {
	if rng.Float64() > crossoverProb {
		return a, b
	}
	for d := 0; d < models.WeightVectorDim; d++ {
		if rng.Float64() > 0.5 {
			continue
		}
		u := rng.Float64()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(crossoverEta+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(crossoverEta+1))
		}
		x1, x2 := a[d], b[d]
		a[d] = clamp01(0.5 * ((1+beta)*x1 + (1-beta)*x2))
		b[d] = clamp01(0.5 * ((1-beta)*x1 + (1+beta)*x2))
	}
	return a, b
}

// mutate applies polynomial mutation with probability 1/dim per gene.
func mutate(g *[models.WeightVectorDim]float64, rng *rand.Rand) {
	pm := 1.0 / float64(models.WeightVectorDim)
	for d := 0; d < models.WeightVectorDim; d++ {
		if rng.Float64() > pm {
			continue
		}
		u := rng.Float64()
		var delta float64
		if u < 0.5 {
			delta = math.Pow(2*u, 1/(mutationEta+1)) - 1
		} else {
			delta = 1 - math.Pow(2*(1-u), 1/(mutationEta+1))
		}
		g[d] = clamp01(g[d] + delta)
	}
}

// survive keeps the best n individuals by non-dominated rank, filling the
// final partial front by crowding distance.
func survive(pop []individual, n int) []individual {
	rankAndCrowd(pop)
	sort.SliceStable(pop, func(i, j int) bool {
		if pop[i].rank != pop[j].rank {
			return pop[i].rank < pop[j].rank
		}
		return pop[i].crowding > pop[j].crowding
	})
	return pop[:n]
}

// rankAndCrowd assigns non-domination ranks and crowding distances.
func rankAndCrowd(pop []individual) {
	fronts := nonDominatedSort(pop)
	for rank, front := range fronts {
		for _, idx := range front {
			pop[idx].rank = rank
		}
		assignCrowding(pop, front)
	}
}

func dominates(a, b *individual) bool {
	better := false
	for k := 0; k < 2; k++ {
		if a.objs[k] > b.objs[k] {
			return false
		}
		if a.objs[k] < b.objs[k] {
			better = true
		}
	}
	return better
}

// nonDominatedSort implements the fast non-dominated sort from NSGA-II.
func nonDominatedSort(pop []individual) [][]int {
	n := len(pop)
	dominatedBy := make([][]int, n)
	domCount := make([]int, n)
	var first []int

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if dominates(&pop[i], &pop[j]) {
				dominatedBy[i] = append(dominatedBy[i], j)
			} else if dominates(&pop[j], &pop[i]) {
				domCount[i]++
			}
		}
		if domCount[i] == 0 {
			first = append(first, i)
		}
	}

	var fronts [][]int
	current := first
	for len(current) > 0 {
		fronts = append(fronts, current)
		var next []int
		for _, i := range current {
			for _, j := range dominatedBy[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}
	return fronts
}

func assignCrowding(pop []individual, front []int) {
	for _, idx := range front {
		pop[idx].crowding = 0
	}
	if len(front) <= 2 {
		for _, idx := range front {
			pop[idx].crowding = math.Inf(1)
		}
		return
	}
	for k := 0; k < 2; k++ {
		sorted := make([]int, len(front))
		copy(sorted, front)
		sort.SliceStable(sorted, func(i, j int) bool {
			return pop[sorted[i]].objs[k] < pop[sorted[j]].objs[k]
		})
		lo, hi := pop[sorted[0]].objs[k], pop[sorted[len(sorted)-1]].objs[k]
		pop[sorted[0]].crowding = math.Inf(1)
		pop[sorted[len(sorted)-1]].crowding = math.Inf(1)
		if hi == lo {
			continue
		}
		for i := 1; i < len(sorted)-1; i++ {
			pop[sorted[i]].crowding += (pop[sorted[i+1]].objs[k] - pop[sorted[i-1]].objs[k]) / (hi - lo)
		}
	}
}

// frontCandidates decodes the first front into unique contracts, ordered
// by expected score (descending) then risk (ascending), truncated to limit.
func frontCandidates(pop []individual, limit int) []models.CandidateContract {
	var front []individual
	for _, ind := range pop {
		if ind.rank == 0 {
			front = append(front, ind)
		}
	}
	if len(front) == 0 {
		front = pop[:1]
	}

	sort.SliceStable(front, func(i, j int) bool {
		if front[i].objs[0] != front[j].objs[0] {
			return front[i].objs[0] < front[j].objs[0] // higher score first
		}
		return front[i].objs[1] < front[j].objs[1]
	})

	seen := make(map[models.Contract]struct{}, limit)
	out := make([]models.CandidateContract, 0, limit)
	for _, ind := range front {
		if _, dup := seen[ind.contract]; dup {
			continue
		}
		seen[ind.contract] = struct{}{}
		w := models.WeightVectorFrom(ind.genome)
		out = append(out, models.CandidateContract{
			Contract:      ind.contract,
			Source:        models.SourceSearch,
			Weights:       &w,
			ExpectedScore: -ind.objs[0] * normScore,
			Risk:          ind.objs[1],
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// fromVector rebuilds a FeatureRecord from a flat vector in FeatureNames
// order, failing on any length mismatch.
func fromVector(v []float64) (*models.FeatureRecord, error) {
	if len(v) != len(models.FeatureNames) {
		return nil, &SchemaMismatchError{Got: len(v), Want: len(models.FeatureNames)}
	}
	f := &models.FeatureRecord{}
	i := 0
	next := func() float64 { x := v[i]; i++; return x }

	f.HCP = int(next())
	for s := 0; s < 4; s++ {
		f.SuitHCP[s] = int(next())
	}
	for s := 0; s < 4; s++ {
		f.SuitLength[s] = int(next())
	}
	f.Balance1 = balanceFromSeverity(next())
	f.Balance2 = balanceFromSeverity(next())
	for s := 0; s < 4; s++ {
		f.Stopper[s] = int(next())
	}
	f.LTC = next()
	for s := 0; s < 4; s++ {
		f.RangeLow[s] = int(next())
		f.RangeHigh[s] = int(next())
	}
	for s := 0; s < 4; s++ {
		f.HonorWeight[s] = next()
	}
	f.HonorPower = next()
	f.Controls = int(next())
	f.QuickTricks = next()
	return f, nil
}

// balanceFromSeverity recovers the coarse category for a stored severity.
func balanceFromSeverity(sev float64) models.Balance {
	var cat models.BalanceCategory
	switch {
	case sev == 0:
		cat = models.Balanced
	case sev <= 0.5:
		cat = models.SemiBalanced
	case sev < 1.0:
		cat = models.Unbalanced
	default:
		cat = models.VeryUnbalanced
	}
	return models.Balance{Category: cat, Severity: sev}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
