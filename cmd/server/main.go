// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/api"
	"github.com/TheOnly3aq/z3radar/internal/config"
	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/photos"
	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Strs("cars", cfg.Cars.Allowed).
		Bool("upstream_configured", cfg.Upstream.Ready() == nil).
		Msg("Starting Z3 Radar")

	if err := cfg.Upstream.Ready(); err != nil {
		// Not fatal: the gateway reports this per request so the rest of
		// the service stays up while the operator fixes the deployment.
		logging.Warn().Err(err).Msg("Upstream is not fully configured")
	}

	// Photo catalog is optional; without it the photos endpoint serves an
	// empty gallery in production.
	var photoStore *photos.Store
	if cfg.Database.Path != "" {
		photoStore, err = photos.NewStore(&cfg.Database)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize photo store")
		}
		defer func() {
			if err := photoStore.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing photo store")
			}
		}()
	} else {
		logging.Info().Msg("No photo database configured, gallery disabled")
	}

	upstream := rdw.NewBreakerClient(rdw.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.Timeout))

	var store api.PhotoStore
	if photoStore != nil {
		store = photoStore
	}
	handler := api.NewHandler(cfg, upstream, store)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(cfg, handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
