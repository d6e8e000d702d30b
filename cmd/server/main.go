package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/particle-odds/internal/config"
	"github.com/xtding233/particle-odds/internal/logger"
	"github.com/xtding233/particle-odds/internal/service"
	"github.com/xtding233/particle-odds/internal/transport/grpcapi"
	"github.com/xtding233/particle-odds/internal/transport/httpapi"
)

func main() {
	configPath := flag.String("config", "config/particle-odds.yaml", "path to YAML config")
	watchEvery := flag.Duration("watch", 2*time.Second, "config poll interval; 0 disables hot reload")
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.New(cfg.Log, os.Stdout)
	defer lg.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, loader, cfg, lg, *watchEvery); err != nil {
		lg.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, loader *config.Loader, cfg config.Config, lg *logger.Logger, watchEvery time.Duration) error {
	svc := service.New(cfg, lg.Logger)

	if watchEvery > 0 {
		w := config.WatchLoader(loader, watchEvery, svc.SetConfig, func(err error) {
			lg.Warn("config reload rejected; keeping previous", "err", err)
		})
		defer w.Stop()
	}

	grpcServer, err := grpcapi.Listen(cfg.GRPCAddr, svc, lg.Logger)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.New(svc, lg.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	errs := make(chan error, 2)
	go func() { errs <- grpcServer.Serve(runCtx) }()
	go func() {
		lg.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			return
		}
		errs <- nil
	}()

	var firstErr error
	pending := 2
	select {
	case <-ctx.Done():
	case firstErr = <-errs:
		pending--
	}

	cancelRun()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && firstErr == nil {
		firstErr = err
	}
	for ; pending > 0; pending-- {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
