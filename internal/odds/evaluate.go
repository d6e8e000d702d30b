package odds

import (
	"strconv"
	"strings"
)

// HighlightThreshold is the cumulative percentage a cell must exceed
// (strictly) to be highlighted.
const HighlightThreshold = 70.0

// DisplayCell is one rendered cell of the odds table.
type DisplayCell struct {
	Percent   float64 // chance of at least one emission, 0..100, unrounded
	Text      string  // e.g. "92.2%", "100%"
	Highlight bool    // Percent > HighlightThreshold
}

// DisplayGrid is an immutable snapshot of the table for one hit count.
type DisplayGrid struct {
	Trials int
	cells  [NumRanks][NumRates]DisplayCell
}

// Evaluate derives the displayed table for the given hit count.
// The whole grid is recomputed on every call; trials <= 0 returns ErrInvalidTrials.
func Evaluate(g Grid, trials int) (DisplayGrid, error) {
	if err := validateTrials(trials); err != nil {
		return DisplayGrid{}, err
	}
	out := DisplayGrid{Trials: trials}
	for i := range g.cells {
		for j, p := range g.cells[i] {
			out.cells[i][j] = NewDisplayCell(CumulativePercent(p, trials))
		}
	}
	return out, nil
}

// At returns the display cell for (rank, rate).
func (d DisplayGrid) At(rank, rate int) (DisplayCell, error) {
	if err := checkIndex(rank, rate); err != nil {
		return DisplayCell{}, err
	}
	return d.cells[rank][rate], nil
}

// Rows returns a copy of the cells, one slice per rank.
func (d DisplayGrid) Rows() [][]DisplayCell {
	rows := make([][]DisplayCell, NumRanks)
	for i := range d.cells {
		rows[i] = append([]DisplayCell(nil), d.cells[i][:]...)
	}
	return rows
}

// CumulativePercent is 100 * (1 - nonEmit^trials).
func CumulativePercent(nonEmit float64, trials int) float64 {
	return 100.0 * (1.0 - powi(nonEmit, trials))
}

// NewDisplayCell applies the formatting and highlight policy to a percentage.
func NewDisplayCell(percent float64) DisplayCell {
	return DisplayCell{
		Percent:   percent,
		Text:      FormatPercent(percent),
		Highlight: percent > HighlightThreshold,
	}
}

// FormatPercent rounds to one decimal place and appends "%".
// A rounded "100.0" is shortened to "100", so 99.96 renders as "100%".
func FormatPercent(percent float64) string {
	s := strconv.FormatFloat(percent, 'f', 1, 64)
	if s == "100.0" {
		s = strings.TrimSuffix(s, ".0")
	}
	return s + "%"
}

// powi raises base to a non-negative integer power by repeated
// multiplication. For base in [0,1] the result is non-increasing in n.
func powi(base float64, n int) float64 {
	switch {
	case n <= 0:
		return 1
	case base == 0:
		return 0
	case base == 1:
		return 1
	}
	r := 1.0
	for k := 0; k < n; k++ {
		r *= base
		if r == 0 {
			break
		}
	}
	return r
}
