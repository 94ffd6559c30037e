package ga

import (
	"unicode/utf8"
)

const (
	// MinChar and MaxChar bound the printable ASCII alphabet
	MinChar byte = 0x20
	MaxChar byte = 0x7E

	// AlphabetSize is the number of printable ASCII symbols (95)
	AlphabetSize = int(MaxChar-MinChar) + 1

	invalidText = "DNA contains non-utf8 characters."
)

// Candidate is a fixed-length string of printable ASCII characters
type Candidate struct {
	dna []byte
}

// NewCandidate validates text and returns a candidate holding a copy of it
func NewCandidate(text string) (*Candidate, error) {
	if !isPrintableASCII(text) {
		return nil, ErrNotPrintableASCII
	}
	return &Candidate{dna: []byte(text)}, nil
}

// RandomCandidate creates a candidate of the given length with uniform noise
func RandomCandidate(length int, rng Source) *Candidate {
	dna := make([]byte, length)
	for i := range dna {
		dna[i] = MinChar + byte(rng.Intn(AlphabetSize))
	}
	return &Candidate{dna: dna}
}

// Assign replaces the DNA. On error the candidate keeps its previous value.
func (c *Candidate) Assign(text string) error {
	if !isPrintableASCII(text) {
		return ErrNotPrintableASCII
	}
	c.dna = []byte(text)
	return nil
}

// String returns the DNA as text
func (c *Candidate) String() string {
	if !utf8.Valid(c.dna) {
		return invalidText
	}
	return string(c.dna)
}

// Len returns the number of characters
func (c *Candidate) Len() int {
	return len(c.dna)
}

// DNA returns a copy of the raw bytes
func (c *Candidate) DNA() []byte {
	out := make([]byte, len(c.dna))
	copy(out, c.dna)
	return out
}

// Clone creates a deep copy of a candidate
func (c *Candidate) Clone() *Candidate {
	return &Candidate{dna: c.DNA()}
}

func isPrintableASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < MinChar || text[i] > MaxChar {
			return false
		}
	}
	return true
}
