package ga

import (
	"fmt"
	"strings"
)

// MinPoolSize is the smallest population whose top 10% is non-empty
const MinPoolSize = BreedingFraction

// Snapshot is the fitness ranking of one generation
type Snapshot struct {
	Generation  int
	Ranked      []Mate // sorted by fitness, descending
	Best        *Candidate
	BestFitness float64
}

// Fitnesses returns the fitness of every member in ranked order
func (s *Snapshot) Fitnesses() []float64 {
	out := make([]float64, len(s.Ranked))
	for i, m := range s.Ranked {
		out[i] = m.Fitness
	}
	return out
}

// Population evolves a fixed number of candidates toward a target
type Population struct {
	members    []*Candidate
	target     *Candidate
	generation int
	rng        Source

	// both nil whenever members changed since the last evaluation
	ranked   []Mate // live members, never handed out
	snapshot *Snapshot
}

// NewPopulation creates a new random population of poolSize candidates
func NewPopulation(target *Candidate, poolSize int, rng Source) (*Population, error) {
	if poolSize < MinPoolSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrPoolTooSmall, poolSize, MinPoolSize)
	}
	if target.Len() < 2 {
		return nil, fmt.Errorf("target %q: %w", target.String(), ErrTooShortForCrossover)
	}

	p := &Population{
		members: make([]*Candidate, poolSize),
		target:  target.Clone(),
		rng:     rng,
	}

	for i := 0; i < poolSize; i++ {
		p.members[i] = RandomCandidate(target.Len(), rng)
	}

	return p, nil
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.members)
}

// Generation returns how many generation steps have run
func (p *Population) Generation() int {
	return p.generation
}

// Target returns a copy of the target
func (p *Population) Target() *Candidate {
	return p.target.Clone()
}

// Members returns copies of the current candidates
func (p *Population) Members() []*Candidate {
	out := make([]*Candidate, len(p.members))
	for i, m := range p.members {
		out[i] = m.Clone()
	}
	return out
}

// Evaluate ranks the current members. The snapshot holds copies of the
// members and is cached until the next Step.
func (p *Population) Evaluate() *Snapshot {
	if p.snapshot != nil {
		return p.snapshot
	}

	ranked := p.rank()
	copies := make([]Mate, len(ranked))
	for i, m := range ranked {
		copies[i] = Mate{Candidate: m.Candidate.Clone(), Fitness: m.Fitness}
	}

	p.snapshot = &Snapshot{
		Generation:  p.generation,
		Ranked:      copies,
		Best:        copies[0].Candidate,
		BestFitness: copies[0].Fitness,
	}
	return p.snapshot
}

func (p *Population) rank() []Mate {
	if p.ranked != nil {
		return p.ranked
	}

	ranked, err := RankMates(p.members, p.target)
	if err != nil {
		// members always share the target length
		panic(fmt.Errorf("ga: evaluate generation %d: %w", p.generation, err))
	}
	p.ranked = ranked
	return ranked
}

// Best returns a copy of the fittest member. Ties go to the earliest member.
func (p *Population) Best() *Candidate {
	return p.Evaluate().Best.Clone()
}

// Step advances the population by one generation
func (p *Population) Step() {
	size := len(p.members)

	// 1. Evaluate and rank
	ranked := p.rank()

	// 2. Keep the top 10% for breeding
	pool := BreedingPool(ranked)
	roulette, err := NewRoulette(pool)
	if err != nil {
		panic(fmt.Errorf("ga: selection in generation %d: %w", p.generation, err))
	}

	// 3. Reproduce
	children := make([]*Candidate, size)
	for i := 0; i < size; i++ {
		p1, p2 := roulette.SelectParents(pool, p.rng)

		child, err := p1.Crossover(p2, p.rng)
		if err != nil {
			panic(fmt.Errorf("ga: crossover in generation %d: %w", p.generation, err))
		}
		child.Mutate(MutationRate, p.rng)

		children[i] = child
	}

	// 4. Replace
	p.members = children
	p.ranked = nil
	p.snapshot = nil
	p.generation++
}

func (p *Population) String() string {
	parts := make([]string, len(p.members))
	for i, m := range p.members {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
