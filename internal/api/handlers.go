// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hopmatch/hopmatch/internal/database"
	"github.com/hopmatch/hopmatch/internal/logging"
	"github.com/hopmatch/hopmatch/internal/metrics"
	"github.com/hopmatch/hopmatch/internal/models"
	"github.com/hopmatch/hopmatch/internal/recommend"
)

// RatingStore is the persistence surface the handlers need. It is satisfied
// by *database.Database.
type RatingStore interface {
	InsertRating(ctx context.Context, obs recommend.Observation) (int64, error)
	Stats(ctx context.Context) (database.Stats, error)
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies.
type Server struct {
	store     RatingStore
	predictor recommend.Predictor
	logger    zerolog.Logger
}

// NewServer creates the API server.
func NewServer(store RatingStore, predictor recommend.Predictor, logger zerolog.Logger) *Server {
	return &Server{
		store:     store,
		predictor: predictor,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// handleSubmitRating stores one rating with the submitter's full profile.
// Responds 201 with the new row id.
func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.SubmitRatingRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RatingSubmissionErrors.WithLabelValues("validation").Inc()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	obs := recommend.Observation{
		UserID:      req.UserID,
		Item:        req.BeerName,
		Rating:      req.Rating,
		Profile:     req.Profile(),
		SubmittedAt: time.Now().UTC(),
	}

	id, err := s.store.InsertRating(r.Context(), obs)
	if err != nil {
		metrics.RatingSubmissionErrors.WithLabelValues("database").Inc()
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to store rating", err)
		return
	}

	metrics.RatingsSubmitted.Inc()
	logging.Ctx(r.Context()).Info().
		Str("user_id", sanitizeLogValue(req.UserID)).
		Str("beer", sanitizeLogValue(req.BeerName)).
		Int("rating", req.Rating).
		Msg("rating stored")

	respondSuccess(w, http.StatusCreated, models.SubmitRatingResponse{ID: id}, started)
}

// handlePredict produces a recommendation for the query profile. The
// response is always 200: prediction failures are carried inside the result
// payload, not as HTTP errors.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.PredictRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	profile := req.Profile()

	predictStart := time.Now()
	result := s.predictor.Predict(r.Context(), profile)
	duration := time.Since(predictStart)

	outcome := "success"
	if !result.Success {
		outcome = string(result.Code)
	}
	metrics.RecordPrediction(s.predictor.Name(), outcome, duration)
	if result.Success {
		metrics.RecordPredictionResult(result.Confidence, result.CandidateCount)
	}

	logging.Ctx(r.Context()).Info().
		Str("predictor", s.predictor.Name()).
		Bool("success", result.Success).
		Str("item", sanitizeLogValue(result.Item)).
		Str("code", string(result.Code)).
		Dur("duration", duration).
		Msg("prediction served")

	respondSuccess(w, http.StatusOK, result, started)
}

// handleStats reports aggregate counts over the stored ratings.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	stats, err := s.store.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to query stats", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.StatsResponse{
		TotalRatings:   stats.TotalRatings,
		EstimatedUsers: stats.EstimatedUsers,
	}, started)
}

// handleHealth verifies the database connection.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if err := s.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "UNHEALTHY",
			"Database unreachable", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.HealthResponse{Status: "ok"}, started)
}
