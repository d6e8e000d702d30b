package odds

import (
	"math"
	"sort"
)

// Stats summarizes integer samples.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// SimCell is the Monte Carlo result for one (rank, rate) pair.
type SimCell struct {
	// Percent of runs in which at least one particle was emitted.
	Percent float64
	// Expected is the closed-form CumulativePercent for comparison.
	Expected float64
	// FirstHit describes the 1-based hit index of the first emission,
	// over the runs that emitted.
	FirstHit Stats
}

// Simulation is a Monte Carlo snapshot of the whole table.
type Simulation struct {
	Trials int
	Runs   int
	cells  [NumRanks][NumRates]SimCell
}

// At returns the simulated cell for (rank, rate).
func (s Simulation) At(rank, rate int) (SimCell, error) {
	if err := checkIndex(rank, rate); err != nil {
		return SimCell{}, err
	}
	return s.cells[rank][rate], nil
}

// Rows returns a copy of the cells, one slice per rank.
func (s Simulation) Rows() [][]SimCell {
	rows := make([][]SimCell, NumRanks)
	for i := range s.cells {
		rows[i] = append([]SimCell(nil), s.cells[i][:]...)
	}
	return rows
}

// MaxDeviation returns the largest |Percent - Expected| across all cells.
func (s Simulation) MaxDeviation() float64 {
	var worst float64
	for i := range s.cells {
		for _, c := range s.cells[i] {
			if d := math.Abs(c.Percent - c.Expected); d > worst {
				worst = d
			}
		}
	}
	return worst
}

// Simulate runs `runs` experiments of `trials` hits for every cell and
// reports the empirical emission percentage next to the closed-form value.
// A nil rng uses DefaultRNG.
func Simulate(g Grid, trials, runs int, rng RandomSource) (Simulation, error) {
	if err := validateTrials(trials); err != nil {
		return Simulation{}, err
	}
	if err := validateTrials(runs); err != nil {
		return Simulation{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	out := Simulation{Trials: trials, Runs: runs}
	for i := range g.cells {
		for j, nonEmit := range g.cells[i] {
			c, err := simulateCell(nonEmit, trials, runs, rng)
			if err != nil {
				return Simulation{}, err
			}
			out.cells[i][j] = c
		}
	}
	return out, nil
}

// simulateCell returns the empirical result for one non-emission probability.
func simulateCell(nonEmit float64, trials, runs int, rng RandomSource) (SimCell, error) {
	p := 1.0 - nonEmit
	firsts := make([]int, 0, runs)
	for r := 0; r < runs; r++ {
		for hit := 1; hit <= trials; hit++ {
			ok, err := Draw(p, rng)
			if err != nil {
				return SimCell{}, err
			}
			if ok {
				firsts = append(firsts, hit)
				break
			}
		}
	}
	return SimCell{
		Percent:  100.0 * float64(len(firsts)) / float64(runs),
		Expected: CumulativePercent(nonEmit, trials),
		FirstHit: calcStats(firsts),
	}, nil
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}
