package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/xtding233/particle-odds/internal/config"
	"github.com/xtding233/particle-odds/internal/odds"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolveTrials(t *testing.T) {
	s := newTestService(t)
	cases := []struct {
		raw  string
		want int
		err  error
	}{
		{"", 1, nil},
		{"5", 5, nil},
		{"20", 20, nil},
		{"21", 0, ErrTrialsOutOfRange},
		{"0", 0, odds.ErrInvalidTrials},
		{"x", 0, odds.ErrInvalidTrials},
	}
	for _, tc := range cases {
		got, err := s.ResolveTrials(tc.raw)
		if tc.err != nil {
			if !errors.Is(err, tc.err) || !IsBadRequest(err) {
				t.Fatalf("ResolveTrials(%q): want %v, got %v", tc.raw, tc.err, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ResolveTrials(%q)=%d,%v want %d", tc.raw, got, err, tc.want)
		}
	}
}

func TestSetConfigChangesRange(t *testing.T) {
	s := newTestService(t)
	cfg := s.Config()
	cfg.MaxTrials = 40
	cfg.DefaultTrials = 10
	s.SetConfig(cfg)
	if n, err := s.ResolveTrials("35"); err != nil || n != 35 {
		t.Fatalf("after reload: %d %v", n, err)
	}
	if n, _ := s.ResolveTrials(""); n != 10 {
		t.Fatalf("default after reload: %d", n)
	}
}

func TestTableView(t *testing.T) {
	s := newTestService(t)
	d, err := s.Table(5)
	if err != nil {
		t.Fatal(err)
	}
	v := NewTableView(d)
	if v.Hits != 5 || len(v.Ranks) != odds.NumRanks || len(v.Rates) != odds.NumRates {
		t.Fatalf("unexpected view header %+v", v)
	}
	if c := v.Cells[2][4]; c.Text != "92.2%" || !c.Highlight {
		t.Fatalf("R3 50%%: %+v", c)
	}
	m := v.AsMap()
	if len(m["cells"].([]any)) != odds.NumRanks {
		t.Fatalf("AsMap cells shape wrong")
	}
}

func TestSimulateLimits(t *testing.T) {
	s := newTestService(t)
	for _, runs := range []int{0, MaxRuns + 1} {
		if _, err := s.Simulate(3, runs, nil); !errors.Is(err, ErrInvalidRuns) {
			t.Fatalf("runs=%d: got %v", runs, err)
		}
	}
	seed := uint64(3)
	sim, err := s.Simulate(3, 200, &seed)
	if err != nil {
		t.Fatal(err)
	}
	v := NewSimulationView(sim)
	if v.Runs != 200 || v.Cells[4][9].Percent != 100 {
		t.Fatalf("unexpected simulation view %+v", v.Cells[4][9])
	}
}
