package ga

// Fitness scores how close c is to target, 1.0 meaning identical.
//
// Per position the distance wraps around the 95-symbol alphabet, so ' ' and
// '~' are neighbours. The sum is normalised by 47 (95/2 truncated) per
// character and evaluated in float32. The result is not clamped; callers that
// need a closed interval clamp it themselves.
func (c *Candidate) Fitness(target *Candidate) (float64, error) {
	if c.Len() != target.Len() {
		return 0, ErrMismatchedTargetLength
	}
	if c.Len() == 0 {
		return 1.0, nil
	}

	total := 0
	for i, b := range c.dna {
		total += circularDistance(b, target.dna[i])
	}

	fitness := float32(1.0) - float32(total)/float32((AlphabetSize/2)*target.Len())
	return float64(fitness), nil
}

func circularDistance(a, b byte) int {
	dist := int(a) - int(b)
	if dist < 0 {
		dist = -dist
	}
	if wrapped := AlphabetSize - dist; wrapped < dist {
		return wrapped
	}
	return dist
}
