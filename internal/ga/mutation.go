package ga

const (
	// MutationRate is the per-character mutation probability used when breeding
	MutationRate = 0.1

	maxShift = 4
)

// Mutate applies circular point mutation in-place. Each character mutates
// with probability rate and is shifted by an offset in [-4, 4), wrapping
// around the printable alphabet instead of clipping at its edges.
func (c *Candidate) Mutate(rate float64, rng Source) {
	for i := range c.dna {
		if rate > rng.Float64() {
			shift := rng.Intn(2*maxShift) - maxShift
			c.dna[i] = shiftChar(c.dna[i], shift)
		}
	}
}

func shiftChar(b byte, shift int) byte {
	offset := (int(b)-int(MinChar)+shift)%AlphabetSize + AlphabetSize
	return MinChar + byte(offset%AlphabetSize)
}
