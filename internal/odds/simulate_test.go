package odds

import (
	"errors"
	"testing"
)

func TestDrawBounds(t *testing.T) {
	got, err := Draw(0, NewSeededRNG(1))
	if err != nil || got {
		t.Fatalf("p=0 should never emit; got=%v err=%v", got, err)
	}
	got, err = Draw(1, NewSeededRNG(1))
	if err != nil || !got {
		t.Fatalf("p=1 should always emit; got=%v err=%v", got, err)
	}
	if _, err := Draw(-0.1, nil); !errors.Is(err, ErrInvalidProb) {
		t.Fatalf("negative p must error")
	}
	if _, err := Draw(1.1, nil); !errors.Is(err, ErrInvalidProb) {
		t.Fatalf("p>1 must error")
	}
}

func TestSimulateTracksClosedForm(t *testing.T) {
	sim, err := Simulate(BuildGrid(), 3, 20000, NewSeededRNG(42))
	if err != nil {
		t.Fatal(err)
	}
	if sim.Trials != 3 || sim.Runs != 20000 {
		t.Fatalf("unexpected header %d/%d", sim.Trials, sim.Runs)
	}
	if dev := sim.MaxDeviation(); dev > 2.0 {
		t.Fatalf("max deviation %.3f percentage points", dev)
	}
}

func TestSimulateCertainCell(t *testing.T) {
	sim, err := Simulate(BuildGrid(), 5, 100, NewSeededRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	c, err := sim.At(NumRanks-1, NumRates-1)
	if err != nil {
		t.Fatal(err)
	}
	if c.Percent != 100 || c.Expected != 100 {
		t.Fatalf("R5 100%% must always emit: %+v", c)
	}
	if c.FirstHit.Mean != 1 || c.FirstHit.P99 != 1 {
		t.Fatalf("first emission must be on hit 1: %+v", c.FirstHit)
	}
}

func TestSimulateReplicable(t *testing.T) {
	a, err := Simulate(BuildGrid(), 4, 500, NewSeededRNG(9))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(BuildGrid(), 4, 500, NewSeededRNG(9))
	if err != nil {
		t.Fatal(err)
	}
	ra, rb := a.Rows(), b.Rows()
	for i := range ra {
		for j := range ra[i] {
			if ra[i][j].Percent != rb[i][j].Percent || ra[i][j].FirstHit.Mean != rb[i][j].FirstHit.Mean {
				t.Fatalf("cell(%d,%d) differs between seeded runs", i, j)
			}
		}
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	if _, err := Simulate(BuildGrid(), 0, 10, nil); !errors.Is(err, ErrInvalidTrials) {
		t.Fatalf("trials=0: got %v", err)
	}
	if _, err := Simulate(BuildGrid(), 3, 0, nil); !errors.Is(err, ErrInvalidTrials) {
		t.Fatalf("runs=0: got %v", err)
	}
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4})
	if s.Mean != 2.5 || s.Var != 1.25 || s.P50 != 2.5 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if empty := calcStats(nil); empty.Mean != 0 || empty.Samples != nil {
		t.Fatalf("empty samples must give zero stats")
	}
}
