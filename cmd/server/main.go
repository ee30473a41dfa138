// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package main is the entry point for the Hopmatch server.
//
// Hopmatch collects beer ratings with full taste profiles from study
// participants and serves personalized recommendations. Predictions come
// from one of two interchangeable backends selected by configuration:
// a local similarity engine (nearest-neighbour search over standardized
// profile features) or a hosted chat-completion model prompted with
// few-shot examples.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 sources (defaults, YAML file, env)
//  2. Logging: zerolog, JSON or console format
//  3. Database: SQLite (pure Go driver) with WAL journaling
//  4. Catalog: the configured alcoholic/non-alcoholic item lists
//  5. Predictor: similarity engine or hosted-model backend
//  6. HTTP server: chi router with the REST API and Prometheus metrics
//
// # Configuration
//
// See config.example.yaml for the full reference. The most common settings:
//
//	export HTTP_PORT=8080
//	export DATABASE_PATH=/data/hopmatch.db
//	export PREDICTOR_TYPE=similarity
//	./hopmatch
//
// To use the hosted-model backend:
//
//	export PREDICTOR_TYPE=llm
//	export LLM_API_KEY=sk-...
//	export LLM_MODEL=gpt-4o-mini
//	./hopmatch
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections, waits up to 10 seconds for in-flight requests,
// then closes the database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hopmatch/hopmatch/internal/api"
	"github.com/hopmatch/hopmatch/internal/config"
	"github.com/hopmatch/hopmatch/internal/database"
	"github.com/hopmatch/hopmatch/internal/logging"
	"github.com/hopmatch/hopmatch/internal/recommend"
	"github.com/hopmatch/hopmatch/internal/recommend/llm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("predictor", cfg.Predictor.Type).
		Str("addr", cfg.Server.Addr()).
		Msg("Configuration loaded")

	db, err := database.New(cfg.Database, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	catalog, err := recommend.NewCatalog(cfg.Catalog.AlcoholicBeers, cfg.Catalog.NonAlcoholicBeers)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid catalog configuration")
	}

	engineCfg := recommend.Config{
		TopK:             cfg.Predictor.TopK,
		GenderLabels:     cfg.Labels.Genders,
		FrequencyLabels:  cfg.Labels.Frequencies,
		SimilarityWeight: cfg.Predictor.SimilarityWeight,
		RatingWeight:     cfg.Predictor.RatingWeight,
	}

	predictor, err := buildPredictor(db, catalog, engineCfg, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build predictor")
	}
	logging.Info().Str("predictor", predictor.Name()).Msg("Predictor ready")

	server := api.NewServer(db, predictor, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(cfg.Server),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}

// buildPredictor constructs the configured prediction backend. Both
// backends read observations from the database and satisfy the same
// contract, so the rest of the server is oblivious to the choice.
func buildPredictor(db *database.Database, catalog *recommend.Catalog, engineCfg recommend.Config, cfg *config.Config) (recommend.Predictor, error) {
	switch cfg.Predictor.Type {
	case "llm":
		return llm.New(db, catalog, engineCfg, cfg.Predictor.LLM, logging.Logger())
	default:
		return recommend.NewSimilarityPredictor(db, catalog, engineCfg, logging.Logger())
	}
}
