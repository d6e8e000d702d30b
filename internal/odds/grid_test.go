package odds

import (
	"errors"
	"math"
	"testing"
)

func TestBuildGridMatchesFormula(t *testing.T) {
	g := BuildGrid()
	for i := 0; i < NumRanks; i++ {
		for j := 0; j < NumRates; j++ {
			got, err := g.At(i, j)
			if err != nil {
				t.Fatalf("At(%d,%d): %v", i, j, err)
			}
			want := 1 - (float64(10*(j+1))/100)*(0.6+0.1*float64(i))
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("cell(%d,%d)=%v, want %v", i, j, got, want)
			}
			if got < 0 || got > 1 {
				t.Fatalf("cell(%d,%d)=%v outside [0,1]", i, j, got)
			}
		}
	}
}

func TestBuildGridCorners(t *testing.T) {
	g := BuildGrid()
	first, _ := g.At(0, 0)
	if math.Abs(first-0.94) > 1e-9 {
		t.Fatalf("R1 10%%: got %v, want 0.94", first)
	}
	last, _ := g.At(NumRanks-1, NumRates-1)
	if last != 0 {
		t.Fatalf("R5 100%%: got %v, want 0", last)
	}
}

func TestBuildGridDeterministic(t *testing.T) {
	if BuildGrid() != BuildGrid() {
		t.Fatalf("BuildGrid is not deterministic")
	}
}

func TestGridAtOutOfRange(t *testing.T) {
	g := BuildGrid()
	cases := [][2]int{{-1, 0}, {0, -1}, {NumRanks, 0}, {0, NumRates}, {99, 99}}
	for _, c := range cases {
		if _, err := g.At(c[0], c[1]); !errors.Is(err, ErrCellOutOfRange) {
			t.Fatalf("At(%d,%d): want ErrCellOutOfRange, got %v", c[0], c[1], err)
		}
	}
}

func TestAxisLookups(t *testing.T) {
	c, err := RankCoefficient(2)
	if err != nil || math.Abs(c-0.8) > 1e-9 {
		t.Fatalf("RankCoefficient(2)=%v err=%v", c, err)
	}
	r, err := RatePercent(9)
	if err != nil || r != 100 {
		t.Fatalf("RatePercent(9)=%v err=%v", r, err)
	}
	if _, err := RankCoefficient(NumRanks); !errors.Is(err, ErrCellOutOfRange) {
		t.Fatalf("RankCoefficient out of range must error, got %v", err)
	}
	if _, err := RatePercent(-1); !errors.Is(err, ErrCellOutOfRange) {
		t.Fatalf("RatePercent out of range must error, got %v", err)
	}
}

func TestLabels(t *testing.T) {
	ranks := RankLabels()
	if len(ranks) != NumRanks || ranks[0] != "R1" || ranks[4] != "R5" {
		t.Fatalf("unexpected rank labels %v", ranks)
	}
	rates := RateLabels()
	if len(rates) != NumRates || rates[0] != "10%" || rates[9] != "100%" {
		t.Fatalf("unexpected rate labels %v", rates)
	}
}
