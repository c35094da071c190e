package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"Go_Discovery/src/config"
	"Go_Discovery/src/db"
	"Go_Discovery/src/discovery"
	"Go_Discovery/src/handlers"
	"Go_Discovery/src/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New(cfg.LogLevel)
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.NewStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := discovery.NewService(store, discovery.Config{
		RadiusKm:      cfg.Discovery.RadiusKm,
		NewWithinDays: cfg.Discovery.NewWithinDays,
		Cutoff:        cfg.Discovery.Cutoff,
		Now:           time.Now,
	}, logg.Named("discovery"))

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.NewRouter(svc, logg.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("catalog", cfg.CatalogSource))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logg.Info("Shutting down")
	return server.Shutdown(shutdownCtx)
}
