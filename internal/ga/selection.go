package ga

import (
	"math"
	"sort"
)

const (
	// BreedingFraction is the share of the ranked population kept for breeding (1/10)
	BreedingFraction = 10

	minWeight float32 = 0.01
	maxWeight float32 = 1.0
)

// Mate pairs a candidate with its fitness during selection
type Mate struct {
	Candidate *Candidate
	Fitness   float64
}

// RankMates scores every candidate against target and sorts them by fitness (descending)
func RankMates(members []*Candidate, target *Candidate) ([]Mate, error) {
	mates := make([]Mate, len(members))
	for i, m := range members {
		fitness, err := m.Fitness(target)
		if err != nil {
			return nil, err
		}
		mates[i] = Mate{Candidate: m, Fitness: fitness}
	}

	sort.SliceStable(mates, func(i, j int) bool {
		return mates[i].Fitness > mates[j].Fitness
	})
	return mates, nil
}

// BreedingPool returns the top 10% of ranked mates, never fewer than one
func BreedingPool(ranked []Mate) []Mate {
	n := len(ranked) / BreedingFraction
	if n < 1 {
		n = 1
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// SelectionWeight rounds fitness to two decimals in float32, like the
// fitness itself, and clamps it to [0.01, 1.0] so every mate keeps a
// non-zero chance of being picked.
func SelectionWeight(fitness float64) float64 {
	w := float32(math.Round(float64(float32(fitness)*100))) / 100
	if w < minWeight {
		w = minWeight
	}
	if w > maxWeight {
		w = maxWeight
	}
	return float64(w)
}

// Roulette samples indices with probability proportional to their weights
type Roulette struct {
	cumulative []float64
	total      float64
}

// NewRoulette builds a fitness-proportionate sampler over a non-empty pool
func NewRoulette(pool []Mate) (*Roulette, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	r := &Roulette{cumulative: make([]float64, len(pool))}
	for i, m := range pool {
		r.total += SelectionWeight(m.Fitness)
		r.cumulative[i] = r.total
	}
	return r, nil
}

// Sample returns one index, drawn with replacement
func (r *Roulette) Sample(rng Source) int {
	u := rng.Float64() * r.total
	i := sort.Search(len(r.cumulative), func(i int) bool {
		return r.cumulative[i] > u
	})
	if i == len(r.cumulative) {
		i--
	}
	return i
}

// SelectParents samples two parents from the pool; both may be the same mate
func (r *Roulette) SelectParents(pool []Mate, rng Source) (*Candidate, *Candidate) {
	p1 := pool[r.Sample(rng)].Candidate
	p2 := pool[r.Sample(rng)].Candidate
	return p1, p2
}
