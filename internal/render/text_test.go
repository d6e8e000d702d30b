package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xtding233/particle-odds/internal/odds"
)

func TestDisplayWidth(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"R1":    2,
		"100%":  4,
		"会心率":   6,
		"精錬ランク": 10,
	}
	for s, want := range cases {
		if got := DisplayWidth(s); got != want {
			t.Fatalf("DisplayWidth(%q)=%d, want %d", s, got, want)
		}
	}
}

func TestTable(t *testing.T) {
	d, err := odds.Evaluate(odds.BuildGrid(), 5)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	labels := Labels{Title: "odds", Hits: "hits", RankGroup: "精錬ランク", RateGroup: "会心率"}
	if err := Table(&buf, labels, d); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// title, hits, group header, rate header, 5 rank rows
	if len(lines) != 4+odds.NumRanks {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "odds" || lines[1] != "hits 5" {
		t.Fatalf("unexpected header lines %q %q", lines[0], lines[1])
	}
	if !strings.HasSuffix(lines[3], "100%") {
		t.Fatalf("rate header should end with 100%%: %q", lines[3])
	}
	if !strings.HasPrefix(lines[6], "R3") || !strings.Contains(lines[6], "92.2%"+Mark) {
		t.Fatalf("R3 row should contain highlighted 92.2%%: %q", lines[6])
	}
	if !strings.HasPrefix(lines[4], "R1") || !strings.Contains(lines[4], "26.6% ") {
		t.Fatalf("R1 row should contain plain 26.6%%: %q", lines[4])
	}
	for _, l := range lines[3:] {
		if DisplayWidth(l) != DisplayWidth(lines[3]) {
			t.Fatalf("rows not aligned:\n%s", buf.String())
		}
	}
}

func TestSimulation(t *testing.T) {
	s, err := odds.Simulate(odds.BuildGrid(), 2, 50, odds.NewSeededRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Simulation(&buf, s); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1+odds.NumRanks*odds.NumRates {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "monte carlo: hits=2 runs=50") {
		t.Fatalf("unexpected header %q", lines[0])
	}
}
