package ga

import (
	"math/rand"
	"time"
)

// Source is the randomness the operators draw from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a seeded source. A zero seed uses the current time
// (non-deterministic); any other seed gives reproducible runs.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
