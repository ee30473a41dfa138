// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/hopmatch/hopmatch/internal/config"
	"github.com/hopmatch/hopmatch/internal/metrics"
	"github.com/hopmatch/hopmatch/internal/recommend"
)

// Predictor recommends items by prompting a hosted chat-completion model
// with few-shot examples drawn from the most similar observed users. It is a
// drop-in replacement for the similarity predictor behind the same contract.
//
// All calls to the hosted API go through a circuit breaker: after a run of
// consecutive failures the breaker opens and predictions fail fast until the
// cool-down elapses.
type Predictor struct {
	source  recommend.ObservationSource
	catalog *recommend.Catalog
	schema  recommend.FeatureSchema
	cfg     config.LLMConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[string]
	logger  zerolog.Logger
}

// New creates the hosted-model predictor.
func New(source recommend.ObservationSource, catalog *recommend.Catalog, engineCfg recommend.Config, cfg config.LLMConfig, logger zerolog.Logger) (*Predictor, error) {
	if source == nil {
		return nil, fmt.Errorf("observation source not set")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog not set")
	}
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL not set")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model not set")
	}
	if cfg.FewShotCount < 1 {
		return nil, fmt.Errorf("few-shot count must be at least 1, got %d", cfg.FewShotCount)
	}

	log := logger.With().Str("component", "recommend").Str("predictor", "llm").Logger()

	settings := gobreaker.Settings{
		Name:    "llm",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.BreakerMaxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	}

	return &Predictor{
		source:  source,
		catalog: catalog,
		schema:  recommend.NewFeatureSchema(engineCfg),
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[string](settings),
		logger:  log,
	}, nil
}

// Name returns the predictor identifier.
func (p *Predictor) Name() string {
	return "llm"
}

// Predict implements the Predictor contract. Transport errors, open-breaker
// rejections, and unparseable model responses all surface as failed Results,
// never as Go errors.
func (p *Predictor) Predict(ctx context.Context, profile recommend.Profile) (result recommend.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("prediction panicked")
			result = failure(recommend.FailureInternal, 0, "prediction failed: %v", r)
		}
	}()

	observations, err := p.source.Observations(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("observation snapshot failed")
		return failure(recommend.FailureInternal, 0, "prediction failed: %v", err)
	}
	if len(observations) == 0 {
		return failure(recommend.FailureEmptyStore, 0, "no user data available for prediction")
	}

	items := p.catalog.Items(profile.DrinksAlcohol)

	examples, ranked := p.buildExamples(observations, profile, items)
	if len(examples) == 0 {
		return failure(recommend.FailureNoCandidates, 0,
			"no users with rated beers found for this category")
	}

	prompt := buildPrompt(examples, profile, items)

	start := time.Now()
	response, err := p.complete(ctx, prompt)
	duration := time.Since(start)
	if err != nil {
		outcome := "failure"
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			outcome = "rejected"
		}
		metrics.RecordLLMRequest(outcome, duration)
		p.logger.Error().Err(err).Msg("model call failed")
		return failure(recommend.FailureInternal, len(examples), "model call failed: %v", err)
	}
	metrics.RecordLLMRequest("success", duration)

	item, ok := extractItem(response, items)
	if !ok {
		p.logger.Warn().Str("response", truncate(response, 200)).Msg("unparseable model response")
		return failure(recommend.FailureInternal, len(examples),
			"could not extract a valid beer from the model response")
	}

	confidence := heuristicConfidence(response, item)

	p.logger.Debug().
		Str("item", item).
		Float64("confidence", confidence).
		Int("examples", len(examples)).
		Msg("recommendation complete")

	scores := make([]float64, len(ranked))
	for i, rc := range ranked {
		scores[i] = math.Round(rc.Similarity*100) / 100
	}

	return recommend.Result{
		Success:          true,
		Item:             item,
		Confidence:       math.Round(confidence*100) / 100,
		CandidateCount:   len(examples),
		SimilarityScores: scores,
	}
}

// buildExamples collapses the observations into per-user candidates of the
// query's category, ranks them by similarity, and keeps the FewShotCount
// nearest users that have at least one positive in-category rating.
func (p *Predictor) buildExamples(observations []recommend.Observation, query recommend.Profile, items []string) ([]example, []recommend.RankedCandidate) {
	type user struct {
		profile recommend.Profile
		ratings map[string]int
	}

	index := make(map[string]int)
	users := make([]user, 0)
	for _, obs := range observations {
		if obs.Profile.DrinksAlcohol != query.DrinksAlcohol {
			continue
		}
		i, seen := index[obs.UserID]
		if !seen {
			i = len(users)
			index[obs.UserID] = i
			users = append(users, user{profile: obs.Profile, ratings: make(map[string]int)})
		}
		if _, dup := users[i].ratings[obs.Item]; !dup {
			users[i].ratings[obs.Item] = obs.Rating
		}
	}

	// Keep only users that rated something from the candidate item list;
	// a user with no in-category ratings has no preferred beer to teach.
	rated := make([]user, 0, len(users))
	for _, u := range users {
		for _, item := range items {
			if u.ratings[item] > 0 {
				rated = append(rated, u)
				break
			}
		}
	}
	if len(rated) == 0 {
		return nil, nil
	}

	profiles := make([]recommend.Profile, len(rated))
	for i, u := range rated {
		profiles[i] = u.profile
	}

	ranked, err := recommend.NearestProfiles(p.schema, profiles, query, p.cfg.FewShotCount)
	if err != nil {
		return nil, nil
	}

	examples := make([]example, 0, len(ranked))
	for _, rc := range ranked {
		u := rated[rc.Index]
		item, rating := preferredItem(u.ratings, items)
		examples = append(examples, example{profile: u.profile, item: item, rating: rating})
	}

	return examples, ranked
}

// preferredItem returns the highest-rated item of a user, ties broken by
// catalog order.
func preferredItem(ratings map[string]int, items []string) (string, int) {
	var (
		best     string
		bestRate int
	)
	for _, item := range items {
		if r := ratings[item]; r > bestRate {
			best = item
			bestRate = r
		}
	}
	return best, bestRate
}

// chat-completions wire types (OpenAI-compatible subset)
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete sends the prompt through the circuit breaker and returns the
// model's reply text.
func (p *Predictor) complete(ctx context.Context, prompt string) (string, error) {
	return p.breaker.Execute(func() (string, error) {
		body, err := json.Marshal(chatRequest{
			Model:       p.cfg.Model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: p.cfg.Temperature,
			MaxTokens:   p.cfg.MaxTokens,
		})
		if err != nil {
			return "", fmt.Errorf("failed to encode request: %w", err)
		}

		url := strings.TrimSuffix(p.cfg.BaseURL, "/") + "/chat/completions"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if p.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
		}

		var parsed chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("response contained no choices")
		}

		return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
	})
}

// failure builds a failed Result in the engine's uniform shape.
func failure(code recommend.FailureCode, candidateCount int, format string, args ...any) recommend.Result {
	return recommend.Result{
		Success:        false,
		CandidateCount: candidateCount,
		Code:           code,
		Error:          fmt.Sprintf(format, args...),
	}
}

// breakerStateValue maps a breaker state to its metric gauge value.
func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Ensure interface compliance.
var _ recommend.Predictor = (*Predictor)(nil)
