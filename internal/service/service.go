// Package service owns the collaborator state around the odds table: the
// constant grid, the current config, and the hit-count range policy.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/xtding233/particle-odds/internal/config"
	"github.com/xtding233/particle-odds/internal/odds"
	"github.com/xtding233/particle-odds/internal/render"
)

// MaxRuns caps Monte Carlo runs per request.
const MaxRuns = 200_000

var (
	// ErrTrialsOutOfRange reports a hit count outside the configured control range.
	ErrTrialsOutOfRange = errors.New("hit count outside configured range")
	// ErrInvalidRuns reports a Monte Carlo run count that is not in 1..MaxRuns.
	ErrInvalidRuns = errors.New("invalid run count")
)

// IsBadRequest reports whether err was caused by caller input.
func IsBadRequest(err error) bool {
	return errors.Is(err, odds.ErrInvalidTrials) ||
		errors.Is(err, ErrTrialsOutOfRange) ||
		errors.Is(err, ErrInvalidRuns)
}

type Service struct {
	grid odds.Grid
	cfg  atomic.Pointer[config.Config]
	log  *slog.Logger
}

// New builds the grid once and stores the initial config.
func New(cfg config.Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{grid: odds.BuildGrid(), log: log}
	s.cfg.Store(&cfg)
	return s
}

// Config returns the config currently in effect.
func (s *Service) Config() config.Config { return *s.cfg.Load() }

// SetConfig swaps in a reloaded config. The grid does not depend on it.
func (s *Service) SetConfig(cfg config.Config) {
	s.cfg.Store(&cfg)
	s.log.Info("config reloaded", "version", cfg.Version, "min_hits", cfg.MinTrials, "max_hits", cfg.MaxTrials)
}

// Labels returns the literal header strings for rendering.
func (s *Service) Labels() render.Labels {
	l := s.Config().Labels
	return render.Labels{Title: l.Title, Hits: l.Hits, RankGroup: l.RankGroup, RateGroup: l.RateGroup}
}

// ResolveTrials turns the raw text of the hit control into a trial count.
// Empty text selects the configured default; anything else must parse and
// fall inside the configured range.
func (s *Service) ResolveTrials(raw string) (int, error) {
	cfg := s.Config()
	if raw == "" {
		return cfg.DefaultTrials, nil
	}
	n, err := odds.ParseTrials(raw)
	if err != nil {
		return 0, err
	}
	if err := s.CheckTrials(n); err != nil {
		return 0, err
	}
	return n, nil
}

// CheckTrials applies the control's range to an already parsed count.
func (s *Service) CheckTrials(n int) error {
	if n <= 0 {
		return fmt.Errorf("hit count %d: %w", n, odds.ErrInvalidTrials)
	}
	cfg := s.Config()
	if !cfg.InRange(n) {
		return fmt.Errorf("hit count %d not in [%d,%d]: %w", n, cfg.MinTrials, cfg.MaxTrials, ErrTrialsOutOfRange)
	}
	return nil
}

// Table evaluates the grid for trials.
func (s *Service) Table(trials int) (odds.DisplayGrid, error) {
	d, err := odds.Evaluate(s.grid, trials)
	if err != nil {
		return odds.DisplayGrid{}, err
	}
	s.log.Debug("table evaluated", "hits", trials)
	return d, nil
}

// Simulate runs the Monte Carlo cross-check. A nil seed uses the crypto source.
func (s *Service) Simulate(trials, runs int, seed *uint64) (odds.Simulation, error) {
	if runs <= 0 || runs > MaxRuns {
		return odds.Simulation{}, fmt.Errorf("runs %d not in [1,%d]: %w", runs, MaxRuns, ErrInvalidRuns)
	}
	var rng odds.RandomSource
	if seed != nil {
		rng = odds.NewSeededRNG(*seed)
	}
	sim, err := odds.Simulate(s.grid, trials, runs, rng)
	if err != nil {
		return odds.Simulation{}, err
	}
	s.log.Debug("simulation finished", "hits", trials, "runs", runs, "max_dev", sim.MaxDeviation())
	return sim, nil
}
