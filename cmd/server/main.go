package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/app"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/config"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/logger"
)

const (
	shutdownGrace     = 10 * time.Second
	poolStatsInterval = 15 * time.Second
)

// main loads config, builds the app and supervises the HTTP server and the
// session cleanup worker until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing visa admin service",
		"addr", cfg.Addr,
		"env", cfg.Environment,
		"postgres", cfg.UsePostgres(),
		"redis", cfg.UseRedis(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("closing resources failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := a.Cleanup.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if a.Redis != nil {
		g.Go(func() error {
			a.Redis.RunPoolStats(gctx, poolStatsInterval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
