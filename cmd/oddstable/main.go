// Command oddstable prints the particle odds table for a hit count.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xtding233/particle-odds/internal/config"
	"github.com/xtding233/particle-odds/internal/logger"
	"github.com/xtding233/particle-odds/internal/render"
	"github.com/xtding233/particle-odds/internal/service"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "oddstable:", err)
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("oddstable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	hits := fs.String("hits", "", "number of hits (empty uses the configured default)")
	configPath := fs.String("config", "", "path to YAML config (optional)")
	simulate := fs.Bool("simulate", false, "also run a Monte Carlo cross-check")
	runs := fs.Int("runs", 10000, "Monte Carlo runs per cell")
	seed := fs.Uint64("seed", 0, "Monte Carlo seed (0 uses a crypto source)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	// CLI output goes to stdout; diagnostics stay on stderr.
	lg := logger.New(cfg.Log, stderr)
	defer lg.Close()

	svc := service.New(cfg, lg.Logger)
	trials, err := svc.ResolveTrials(*hits)
	if err != nil {
		return err
	}
	d, err := svc.Table(trials)
	if err != nil {
		return err
	}
	if err := render.Table(stdout, svc.Labels(), d); err != nil {
		return err
	}

	if !*simulate {
		return nil
	}
	var s *uint64
	if *seed != 0 {
		s = seed
	}
	sim, err := svc.Simulate(trials, *runs, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	return render.Simulation(stdout, sim)
}
