package ga

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionWeight(t *testing.T) {
	tests := []struct {
		fitness float64
		expect  float64
	}{
		{1.0, 1.0},
		{0.876, 0.88},
		{0.5, 0.5},
		{0.004, 0.01},
		{0.0, 0.01},
		{-0.3, 0.01},
		{1.2, 1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expect, SelectionWeight(tt.fitness), 1e-6, "fitness %v", tt.fitness)
	}
}

func TestSelectionWeightRoundsInSinglePrecision(t *testing.T) {
	// length 40 with a total distance of 329 sits on a rounding half:
	// 82.5 in float32 but just below it once widened to float64
	target := mustCandidate(t, strings.Repeat(" ", 40))
	dna := []byte(strings.Repeat(" ", 40))
	for i := 0; i < 7; i++ {
		dna[i] = ' ' + 47
	}
	// 7*47 = 329
	c := mustCandidate(t, string(dna))

	f, err := c.Fitness(target)
	require.NoError(t, err)

	hundredths := float32(83)
	assert.Equal(t, float64(hundredths/100), SelectionWeight(f))
	assert.Equal(t, float64(float32(0.01)), SelectionWeight(-0.5))
	assert.Equal(t, 1.0, SelectionWeight(1.0))
}

func TestBreedingPool(t *testing.T) {
	ranked := make([]Mate, 95)
	assert.Len(t, BreedingPool(ranked), 9)
	assert.Len(t, BreedingPool(ranked[:10]), 1)
	assert.Len(t, BreedingPool(ranked[:3]), 1)
}

func TestRankMates(t *testing.T) {
	target := mustCandidate(t, "abc")
	members := []*Candidate{
		mustCandidate(t, "xyz"),
		mustCandidate(t, "abc"),
		mustCandidate(t, "abd"),
	}

	ranked, err := RankMates(members, target)
	require.NoError(t, err)
	assert.Equal(t, "abc", ranked[0].Candidate.String())
	assert.Equal(t, "abd", ranked[1].Candidate.String())
	assert.Equal(t, "xyz", ranked[2].Candidate.String())
	assert.Equal(t, 1.0, ranked[0].Fitness)

	_, err = RankMates([]*Candidate{mustCandidate(t, "ab")}, target)
	assert.ErrorIs(t, err, ErrMismatchedTargetLength)
}

func TestRouletteFollowsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	pool := []Mate{
		{Candidate: mustCandidate(t, "aa"), Fitness: 0.9},
		{Candidate: mustCandidate(t, "bb"), Fitness: 0.3},
		{Candidate: mustCandidate(t, "cc"), Fitness: -1.0},
	}
	roulette, err := NewRoulette(pool)
	require.NoError(t, err)

	counts := make([]int, len(pool))
	const draws = 60000
	for i := 0; i < draws; i++ {
		counts[roulette.Sample(rng)]++
	}

	total := 0.9 + 0.3 + 0.01
	assert.InDelta(t, 0.9/total, float64(counts[0])/draws, 0.02)
	assert.InDelta(t, 0.3/total, float64(counts[1])/draws, 0.02)
	assert.Greater(t, counts[2], 0, "clamped weights keep every mate selectable")
}

func TestNewRouletteRejectsEmptyPool(t *testing.T) {
	r, err := NewRoulette(nil)
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.Nil(t, r)

	_, err = NewRoulette([]Mate{})
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSelectParentsSingleMate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := []Mate{{Candidate: mustCandidate(t, "solo"), Fitness: 0.0}}

	roulette, err := NewRoulette(pool)
	require.NoError(t, err)

	p1, p2 := roulette.SelectParents(pool, rng)
	assert.Same(t, pool[0].Candidate, p1)
	assert.Same(t, pool[0].Candidate, p2)
}
