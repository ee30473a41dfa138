// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the service. Fields are populated by
// layered koanf sources: built-in defaults, then an optional YAML file, then
// environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Predictor PredictorConfig `koanf:"predictor"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Labels    LabelsConfig    `koanf:"labels"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs is the number of requests allowed per RateLimitWindow
	// per client IP. Zero disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists the allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" opens an in-memory
	// database, useful for tests.
	Path string `koanf:"path"`

	// BusyTimeout bounds how long a write waits on a locked database.
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// PredictorConfig selects and tunes the prediction backend.
type PredictorConfig struct {
	// Type selects the backend: "similarity" or "llm".
	Type string `koanf:"type"`

	// TopK is the number of nearest profiles considered per prediction.
	TopK int `koanf:"top_k"`

	// SimilarityWeight and RatingWeight blend the confidence score.
	// They must sum to 1.
	SimilarityWeight float64 `koanf:"similarity_weight"`
	RatingWeight     float64 `koanf:"rating_weight"`

	LLM LLMConfig `koanf:"llm"`
}

// LLMConfig configures the hosted-model predictor. It targets any
// OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Temperature float64       `koanf:"temperature"`
	MaxTokens   int           `koanf:"max_tokens"`
	Timeout     time.Duration `koanf:"timeout"`

	// FewShotCount is the number of similar profiles included in the prompt.
	FewShotCount int `koanf:"few_shot_count"`

	// Circuit breaker settings. After BreakerMaxFailures consecutive
	// failures the breaker opens for BreakerTimeout.
	BreakerMaxFailures int           `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// CatalogConfig declares the item catalog per category.
type CatalogConfig struct {
	AlcoholicBeers    []string `koanf:"alcoholic_beers"`
	NonAlcoholicBeers []string `koanf:"non_alcoholic_beers"`
}

// LabelsConfig declares the categorical label enumerations used by the
// feature encoder. Order matters: it fixes the one-hot column layout.
type LabelsConfig struct {
	Genders     []string `koanf:"genders"`
	Frequencies []string `koanf:"frequencies"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Path:        "/data/hopmatch.db",
			BusyTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Predictor: PredictorConfig{
			Type:             "similarity",
			TopK:             3,
			SimilarityWeight: 0.7,
			RatingWeight:     0.3,
			LLM: LLMConfig{
				BaseURL:            "https://api.openai.com/v1",
				APIKey:             "",
				Model:              "gpt-4o-mini",
				Temperature:        0.1,
				MaxTokens:          100,
				Timeout:            30 * time.Second,
				FewShotCount:       10,
				BreakerMaxFailures: 5,
				BreakerTimeout:     60 * time.Second,
			},
		},
		Catalog: CatalogConfig{
			AlcoholicBeers: []string{
				"Beer 1", "Beer 2", "Beer 3", "Beer 4", "Beer 5",
				"Beer 6", "Beer 7", "Beer 8", "Beer 9",
			},
			NonAlcoholicBeers: []string{
				"Beer A", "Beer B", "Beer C", "Beer D", "Beer E",
				"Beer F", "Beer G", "Beer H", "Beer I",
			},
		},
		Labels: LabelsConfig{
			Genders: []string{"male", "female", "prefer-not-to-say"},
			Frequencies: []string{
				"never", "once_a_month", "once_a_week", "multiple_times_a_week",
			},
		},
	}
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	switch c.Predictor.Type {
	case "similarity", "llm":
	default:
		return fmt.Errorf("predictor.type must be \"similarity\" or \"llm\", got %q", c.Predictor.Type)
	}
	if c.Predictor.TopK < 1 {
		return fmt.Errorf("predictor.top_k must be at least 1, got %d", c.Predictor.TopK)
	}
	if sum := c.Predictor.SimilarityWeight + c.Predictor.RatingWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("predictor.similarity_weight and predictor.rating_weight must sum to 1, got %g", sum)
	}
	if c.Predictor.Type == "llm" {
		if c.Predictor.LLM.BaseURL == "" {
			return fmt.Errorf("predictor.llm.base_url is required when predictor.type is \"llm\"")
		}
		if c.Predictor.LLM.Model == "" {
			return fmt.Errorf("predictor.llm.model is required when predictor.type is \"llm\"")
		}
		if c.Predictor.LLM.FewShotCount < 1 {
			return fmt.Errorf("predictor.llm.few_shot_count must be at least 1, got %d", c.Predictor.LLM.FewShotCount)
		}
	}

	if len(c.Catalog.AlcoholicBeers) == 0 {
		return fmt.Errorf("catalog.alcoholic_beers must not be empty")
	}
	if len(c.Catalog.NonAlcoholicBeers) == 0 {
		return fmt.Errorf("catalog.non_alcoholic_beers must not be empty")
	}
	if err := checkLabelList("labels.genders", c.Labels.Genders); err != nil {
		return err
	}
	if err := checkLabelList("labels.frequencies", c.Labels.Frequencies); err != nil {
		return err
	}

	return nil
}

// checkLabelList rejects empty, blank, and duplicate label entries.
func checkLabelList(path string, labels []string) error {
	if len(labels) == 0 {
		return fmt.Errorf("%s must not be empty", path)
	}
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%s contains a blank label", path)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%s contains duplicate label %q", path, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
