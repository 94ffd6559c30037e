package ga

import "errors"

var (
	// ErrNotPrintableASCII is returned when DNA contains a byte outside 0x20..0x7E
	ErrNotPrintableASCII = errors.New("non-printable ASCII character(s) found in DNA")
	// ErrMismatchedTargetLength is returned by Fitness when the target length differs
	ErrMismatchedTargetLength = errors.New("target DNA length does not match")
	// ErrMismatchedPartnerLength is returned by Crossover when the partner length differs
	ErrMismatchedPartnerLength = errors.New("partner DNA length does not match")
	// ErrTooShortForCrossover is returned when there is no valid cross point (length < 2)
	ErrTooShortForCrossover = errors.New("candidate too short for crossover")
	// ErrPoolTooSmall is returned when the truncated breeding pool would be empty
	ErrPoolTooSmall = errors.New("pool size too small")
	// ErrEmptyPool is returned when sampling from a breeding pool with no mates
	ErrEmptyPool = errors.New("breeding pool is empty")
)
