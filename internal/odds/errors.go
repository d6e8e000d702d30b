package odds

import (
	"errors"
	"math"
)

var (
	// ErrInvalidTrials reports a hit count that is not a positive integer.
	ErrInvalidTrials = errors.New("invalid hit count; must be a positive integer")
	// ErrCellOutOfRange reports a lookup outside the rank/rate grid.
	// It always indicates a programming error, never bad user input.
	ErrCellOutOfRange = errors.New("grid index out of range")
	// ErrInvalidProb reports a probability outside 0..1.
	ErrInvalidProb = errors.New("invalid probability p; must be 0..1")
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

func validateTrials(trials int) error {
	if trials <= 0 {
		return ErrInvalidTrials
	}
	return nil
}
