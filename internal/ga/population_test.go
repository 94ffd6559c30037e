package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	target := mustCandidate(t, "hello world")

	pop, err := NewPopulation(target, 50, rng)
	require.NoError(t, err)

	assert.Equal(t, 50, pop.Size())
	assert.Equal(t, 0, pop.Generation())
	for _, m := range pop.Members() {
		assert.Equal(t, target.Len(), m.Len())
	}
}

func TestNewPopulationRejects(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewPopulation(mustCandidate(t, "hello"), MinPoolSize-1, rng)
	assert.ErrorIs(t, err, ErrPoolTooSmall)

	_, err = NewPopulation(mustCandidate(t, "h"), 100, rng)
	assert.ErrorIs(t, err, ErrTooShortForCrossover)
}

func TestPopulationTargetIsNotAliased(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	target := mustCandidate(t, "hello")

	pop, err := NewPopulation(target, 20, rng)
	require.NoError(t, err)

	require.NoError(t, target.Assign("world"))
	assert.Equal(t, "hello", pop.Target().String())

	require.NoError(t, pop.Target().Assign("xxxxx"))
	assert.Equal(t, "hello", pop.Target().String())
}

func TestStepKeepsSize(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	target := mustCandidate(t, "abcdef")

	pop, err := NewPopulation(target, 37, rng)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		pop.Step()
		require.Equal(t, 37, pop.Size())
		for _, m := range pop.Members() {
			require.Equal(t, target.Len(), m.Len())
		}
	}
	assert.Equal(t, 25, pop.Generation())
}

func TestEvaluateIsCachedUntilStep(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop, err := NewPopulation(mustCandidate(t, "cache me"), 30, rng)
	require.NoError(t, err)

	first := pop.Evaluate()
	assert.Same(t, first, pop.Evaluate())
	assert.Equal(t, 0, first.Generation)
	assert.Len(t, first.Ranked, 30)

	pop.Step()
	second := pop.Evaluate()
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, second.Generation)
}

func TestSnapshotIsRanked(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	target := mustCandidate(t, "ranking")
	pop, err := NewPopulation(target, 40, rng)
	require.NoError(t, err)

	snap := pop.Evaluate()
	fitnesses := snap.Fitnesses()
	for i := 1; i < len(fitnesses); i++ {
		assert.GreaterOrEqual(t, fitnesses[i-1], fitnesses[i])
	}

	assert.Equal(t, fitnesses[0], snap.BestFitness)
	for _, m := range pop.Members() {
		f, err := m.Fitness(target)
		require.NoError(t, err)
		assert.LessOrEqual(t, f, snap.BestFitness)
	}
}

func TestBestReturnsCopy(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	target := mustCandidate(t, "copy")
	pop, err := NewPopulation(target, 10, rng)
	require.NoError(t, err)

	best := pop.Best()
	f, err := best.Fitness(target)
	require.NoError(t, err)
	assert.Equal(t, pop.Evaluate().BestFitness, f)

	require.NoError(t, best.Assign("zzzz"))
	assert.NotEqual(t, "zzzz", pop.Evaluate().Best.String())
}

func TestSeededRunsAreReproducible(t *testing.T) {
	run := func() string {
		rng := rand.New(rand.NewSource(42))
		pop, err := NewPopulation(mustCandidate(t, "determinism"), 60, rng)
		require.NoError(t, err)
		for i := 0; i < 30; i++ {
			pop.Step()
		}
		return pop.String()
	}
	assert.Equal(t, run(), run())
}

func TestEvolveHello(t *testing.T) {
	rng := rand.New(rand.NewSource(2023))
	target := mustCandidate(t, "hello")

	pop, err := NewPopulation(target, 200, rng)
	require.NoError(t, err)

	initial := pop.Evaluate().BestFitness
	for i := 0; i < 1000 && pop.Evaluate().BestFitness < 1.0; i++ {
		pop.Step()
	}
	final := pop.Evaluate().BestFitness

	assert.Greater(t, final, initial+0.1)
	assert.GreaterOrEqual(t, final, 0.95)
}

func TestSnapshotEditsDoNotReachMembers(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	target := mustCandidate(t, "hello")
	pop, err := NewPopulation(target, 20, rng)
	require.NoError(t, err)

	snap := pop.Evaluate()
	require.NoError(t, snap.Ranked[0].Candidate.Assign("zzzz"))
	require.NoError(t, snap.Ranked[5].Candidate.Assign("zz"))
	snap.Best.Mutate(1.0, rng)

	for _, m := range pop.Members() {
		assert.Equal(t, target.Len(), m.Len())
	}

	assert.NotPanics(t, pop.Step)
	assert.Equal(t, 20, pop.Size())
	for _, m := range pop.Members() {
		assert.Equal(t, target.Len(), m.Len())
	}

	fresh := pop.Evaluate()
	for _, m := range fresh.Ranked {
		assert.Equal(t, target.Len(), m.Candidate.Len())
	}
}
