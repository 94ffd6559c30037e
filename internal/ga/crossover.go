package ga

// Crossover performs single-point crossover with partner and returns the child.
// The cross point is uniform in [1, len-1], so the child always carries at
// least one character from each parent:
//
//	A: oooooo|oooo
//	B: ------|----
//	C: oooooo|----
func (c *Candidate) Crossover(partner *Candidate, rng Source) (*Candidate, error) {
	if c.Len() != partner.Len() {
		return nil, ErrMismatchedPartnerLength
	}
	if c.Len() < 2 {
		return nil, ErrTooShortForCrossover
	}

	point := 1 + rng.Intn(c.Len()-1)

	dna := make([]byte, 0, c.Len())
	dna = append(dna, c.dna[:point]...)
	dna = append(dna, partner.dna[point:]...)

	return NewCandidate(string(dna))
}
