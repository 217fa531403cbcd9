package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/config"
	"github.com/gumallc/loanspa-ssp-v2/internal/logging"
	"github.com/gumallc/loanspa-ssp-v2/internal/push"
	"github.com/gumallc/loanspa-ssp-v2/internal/server"
	"github.com/gumallc/loanspa-ssp-v2/internal/store"
	"github.com/jonboulle/clockwork"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupStore(cfg *config.Config, clock clockwork.Clock) *store.MemStore {
	st := store.New(clock)

	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.Seed(ctx); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("Demo data seeded")
	}

	return st
}

func runGracefulShutdown(srv *server.Server, scheduler *push.TipScheduler, broadcaster *push.Broadcaster) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		scheduler.Stop()
		broadcaster.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	st := setupStore(cfg, clock)

	broadcaster := push.NewBroadcaster(st, clock, cfg.MaxClientsPerUser)
	scheduler := push.NewTipScheduler(broadcaster, push.DefaultCatalog(), cfg.TipInterval, clock)

	srv := server.NewServer(cfg, st, broadcaster)

	done := runGracefulShutdown(srv, scheduler, broadcaster)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
