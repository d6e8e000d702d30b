// Package render draws odds tables as plain text.
package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/xtding233/particle-odds/internal/odds"
)

// Mark is appended to highlighted cells.
const Mark = "*"

// Labels are the literal strings printed around the table.
type Labels struct {
	Title     string
	Hits      string
	RankGroup string
	RateGroup string
}

// Table writes d as an aligned text table:
//
//	title
//	hits N
//	<rank group>  <rate group>
//	       10%   20% ...
//	R1    6.0%* ...
func Table(w io.Writer, labels Labels, d odds.DisplayGrid) error {
	rows := d.Rows()
	ranks := odds.RankLabels()
	rates := odds.RateLabels()

	// column 0 holds rank labels, the rest hold cells
	cols := make([]int, odds.NumRates+1)
	cols[0] = DisplayWidth(labels.RankGroup)
	for _, r := range ranks {
		cols[0] = max(cols[0], DisplayWidth(r))
	}
	for j, r := range rates {
		cols[j+1] = DisplayWidth(r)
		for i := range rows {
			cols[j+1] = max(cols[j+1], DisplayWidth(cellText(rows[i][j])))
		}
	}

	var b strings.Builder
	if labels.Title != "" {
		fmt.Fprintln(&b, labels.Title)
	}
	fmt.Fprintf(&b, "%s %d\n", labelOr(labels.Hits, "hits"), d.Trials)

	b.WriteString(padRight(labels.RankGroup, cols[0]))
	b.WriteString("  ")
	b.WriteString(labels.RateGroup)
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", cols[0]))
	for j, r := range rates {
		b.WriteString(" ")
		b.WriteString(padLeft(r, cols[j+1]))
	}
	b.WriteString("\n")

	for i, row := range rows {
		b.WriteString(padRight(ranks[i], cols[0]))
		for j, c := range row {
			b.WriteString(" ")
			b.WriteString(padLeft(cellText(c), cols[j+1]))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Simulation writes the Monte Carlo result next to the closed form,
// one line per cell.
func Simulation(w io.Writer, s odds.Simulation) error {
	ranks := odds.RankLabels()
	rates := odds.RateLabels()
	var b strings.Builder
	fmt.Fprintf(&b, "monte carlo: hits=%d runs=%d max_dev=%.2fpp\n", s.Trials, s.Runs, s.MaxDeviation())
	for i, row := range s.Rows() {
		for j, c := range row {
			fmt.Fprintf(&b, "%s %4s  sim=%6.2f%%  exact=%6.2f%%  first_hit_mean=%.2f\n",
				ranks[i], rates[j], c.Percent, c.Expected, c.FirstHit.Mean)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DisplayWidth counts terminal columns, two for wide and fullwidth runes.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func cellText(c odds.DisplayCell) string {
	if c.Highlight {
		return c.Text + Mark
	}
	return c.Text + " "
}

func labelOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func padLeft(s string, n int) string {
	if d := n - DisplayWidth(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}

func padRight(s string, n int) string {
	if d := n - DisplayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
