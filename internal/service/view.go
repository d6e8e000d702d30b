package service

import "github.com/xtding233/particle-odds/internal/odds"

// CellView is the wire form of one display cell.
type CellView struct {
	Text      string  `json:"text"`
	Percent   float64 `json:"percent"`
	Highlight bool    `json:"highlight"`
}

// TableView is the wire form of a DisplayGrid plus its headers.
type TableView struct {
	Hits  int          `json:"hits"`
	Ranks []string     `json:"ranks"`
	Rates []string     `json:"rates"`
	Cells [][]CellView `json:"cells"`
}

// SimCellView is the wire form of one Monte Carlo cell.
type SimCellView struct {
	Percent       float64 `json:"percent"`
	Expected      float64 `json:"expected"`
	FirstHitMean  float64 `json:"first_hit_mean"`
	FirstHitP90   float64 `json:"first_hit_p90"`
	FirstHitStdev float64 `json:"first_hit_stddev"`
}

// SimulationView is the wire form of a Simulation.
type SimulationView struct {
	Hits         int             `json:"hits"`
	Runs         int             `json:"runs"`
	MaxDeviation float64         `json:"max_deviation"`
	Ranks        []string        `json:"ranks"`
	Rates        []string        `json:"rates"`
	Cells        [][]SimCellView `json:"cells"`
}

func NewTableView(d odds.DisplayGrid) TableView {
	rows := d.Rows()
	cells := make([][]CellView, len(rows))
	for i, row := range rows {
		cells[i] = make([]CellView, len(row))
		for j, c := range row {
			cells[i][j] = CellView{Text: c.Text, Percent: c.Percent, Highlight: c.Highlight}
		}
	}
	return TableView{
		Hits:  d.Trials,
		Ranks: odds.RankLabels(),
		Rates: odds.RateLabels(),
		Cells: cells,
	}
}

func NewSimulationView(s odds.Simulation) SimulationView {
	rows := s.Rows()
	cells := make([][]SimCellView, len(rows))
	for i, row := range rows {
		cells[i] = make([]SimCellView, len(row))
		for j, c := range row {
			cells[i][j] = SimCellView{
				Percent:       c.Percent,
				Expected:      c.Expected,
				FirstHitMean:  c.FirstHit.Mean,
				FirstHitP90:   c.FirstHit.P90,
				FirstHitStdev: c.FirstHit.StdDev,
			}
		}
	}
	return SimulationView{
		Hits:         s.Trials,
		Runs:         s.Runs,
		MaxDeviation: s.MaxDeviation(),
		Ranks:        odds.RankLabels(),
		Rates:        odds.RateLabels(),
		Cells:        cells,
	}
}

// AsMap converts the view to plain maps and slices, the shape
// structpb.NewStruct accepts.
func (v TableView) AsMap() map[string]any {
	rows := make([]any, len(v.Cells))
	for i, row := range v.Cells {
		cols := make([]any, len(row))
		for j, c := range row {
			cols[j] = map[string]any{"text": c.Text, "percent": c.Percent, "highlight": c.Highlight}
		}
		rows[i] = cols
	}
	return map[string]any{
		"hits":  v.Hits,
		"ranks": anySlice(v.Ranks),
		"rates": anySlice(v.Rates),
		"cells": rows,
	}
}

func (v SimulationView) AsMap() map[string]any {
	rows := make([]any, len(v.Cells))
	for i, row := range v.Cells {
		cols := make([]any, len(row))
		for j, c := range row {
			cols[j] = map[string]any{
				"percent":          c.Percent,
				"expected":         c.Expected,
				"first_hit_mean":   c.FirstHitMean,
				"first_hit_p90":    c.FirstHitP90,
				"first_hit_stddev": c.FirstHitStdev,
			}
		}
		rows[i] = cols
	}
	return map[string]any{
		"hits":          v.Hits,
		"runs":          v.Runs,
		"max_deviation": v.MaxDeviation,
		"ranks":         anySlice(v.Ranks),
		"rates":         anySlice(v.Rates),
		"cells":         rows,
	}
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
