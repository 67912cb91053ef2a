package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/lvpart/internal/jobs"
	"github.com/katalvlaran/lvpart/internal/metrics"
	"github.com/katalvlaran/lvpart/internal/server"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 30 * time.Second

// runServe starts the HTTP API and blocks until SIGINT/SIGTERM.
func runServe(args []string, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	var (
		configPath = fs.String("config", "", "configuration file")
		addr       = fs.String("addr", "", "listen address, overrides server.address")
	)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, log, err := bootstrap(*configPath, stderr)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	searchOpts, err := cfg.Search.Options()
	if err != nil {
		return err
	}

	log.Info().
		Str("address", cfg.Server.Address).
		Int("max_concurrent", cfg.Jobs.MaxConcurrent).
		Dur("job_timeout", cfg.Jobs.JobTimeout).
		Int("workers", cfg.Search.Workers).
		Msg("Configuration loaded")

	m := metrics.NewCollector("lvpart")
	mgr := jobs.NewManager(jobs.Config{
		MaxConcurrent:   cfg.Jobs.MaxConcurrent,
		JobTimeout:      cfg.Jobs.JobTimeout,
		ResultTTL:       cfg.Jobs.ResultTTL,
		CleanupInterval: cfg.Jobs.CleanupInterval,
		BaseOptions:     searchOpts,
	}, log, m)
	defer mgr.Close()

	httpServer := server.New(cfg.Server, searchOpts, mgr, m, log).HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", httpServer.Addr).Msg("HTTP server starting")
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server shutdown complete")

	return nil
}
