package odds

import "fmt"

const (
	// NumRanks is the number of refinement ranks (R1..R5).
	NumRanks = 5
	// NumRates is the number of crit rate columns (10%..100%).
	NumRates = 10
)

// Particle emit rate per crit, from R1 (0.6) to R5 (1.0).
var rankCoefficients = func() [NumRanks]float64 {
	var out [NumRanks]float64
	for i := range out {
		out[i] = 0.6 + 0.1*float64(i)
	}
	return out
}()

// Crit rates in percent: 10, 20, ..., 100.
var ratePercents = func() [NumRates]float64 {
	var out [NumRates]float64
	for j := range out {
		out[j] = float64(10 * (j + 1))
	}
	return out
}()

// Grid holds the per-hit probability that no particle is emitted,
// indexed by [rank][rate]. Both axes are ascending.
type Grid struct {
	cells [NumRanks][NumRates]float64
}

// BuildGrid computes the non-emission grid. It is pure and never fails.
func BuildGrid() Grid {
	var g Grid
	for i, coeff := range rankCoefficients {
		for j, rate := range ratePercents {
			g.cells[i][j] = 1.0 - rate/100.0*coeff
		}
	}
	return g
}

// At returns the non-emission probability for (rank, rate).
// Indices outside the grid return ErrCellOutOfRange.
func (g Grid) At(rank, rate int) (float64, error) {
	if err := checkIndex(rank, rate); err != nil {
		return 0, err
	}
	return g.cells[rank][rate], nil
}

// RankCoefficient returns the emit rate coefficient for a rank index.
func RankCoefficient(rank int) (float64, error) {
	if rank < 0 || rank >= NumRanks {
		return 0, fmt.Errorf("rank %d: %w", rank, ErrCellOutOfRange)
	}
	return rankCoefficients[rank], nil
}

// RatePercent returns the crit rate percentage for a rate index.
func RatePercent(rate int) (float64, error) {
	if rate < 0 || rate >= NumRates {
		return 0, fmt.Errorf("rate %d: %w", rate, ErrCellOutOfRange)
	}
	return ratePercents[rate], nil
}

// RankLabels returns the row headers, positionally matched to the rank axis.
func RankLabels() []string {
	out := make([]string, NumRanks)
	for i := range out {
		out[i] = fmt.Sprintf("R%d", i+1)
	}
	return out
}

// RateLabels returns the column headers, positionally matched to the rate axis.
func RateLabels() []string {
	out := make([]string, NumRates)
	for j, rate := range ratePercents {
		out[j] = fmt.Sprintf("%d%%", int(rate))
	}
	return out
}

func checkIndex(rank, rate int) error {
	if rank < 0 || rank >= NumRanks || rate < 0 || rate >= NumRates {
		return fmt.Errorf("cell (%d,%d): %w", rank, rate, ErrCellOutOfRange)
	}
	return nil
}
