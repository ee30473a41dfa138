// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Predictor.Type != "similarity" {
		t.Errorf("Predictor.Type = %q, want similarity", cfg.Predictor.Type)
	}
	if cfg.Predictor.TopK != 3 {
		t.Errorf("Predictor.TopK = %d, want 3", cfg.Predictor.TopK)
	}
	if len(cfg.Catalog.AlcoholicBeers) != 9 || len(cfg.Catalog.NonAlcoholicBeers) != 9 {
		t.Errorf("catalog sizes = %d/%d, want 9/9",
			len(cfg.Catalog.AlcoholicBeers), len(cfg.Catalog.NonAlcoholicBeers))
	}
	wantFreqs := []string{"never", "once_a_month", "once_a_week", "multiple_times_a_week"}
	if !reflect.DeepEqual(cfg.Labels.Frequencies, wantFreqs) {
		t.Errorf("Labels.Frequencies = %v, want %v", cfg.Labels.Frequencies, wantFreqs)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PREDICTOR_TOP_K", "5")
	t.Setenv("LABELS_GENDERS", "male, female, nonbinary, prefer-not-to-say")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Predictor.TopK != 5 {
		t.Errorf("Predictor.TopK = %d, want 5", cfg.Predictor.TopK)
	}
	wantGenders := []string{"male", "female", "nonbinary", "prefer-not-to-say"}
	if !reflect.DeepEqual(cfg.Labels.Genders, wantGenders) {
		t.Errorf("Labels.Genders = %v, want %v", cfg.Labels.Genders, wantGenders)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 3000
database:
  path: /tmp/study.db
predictor:
  type: similarity
  top_k: 4
catalog:
  alcoholic_beers:
    - Pilsner
    - Stout
  non_alcoholic_beers:
    - Zero Pilsner
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/study.db" {
		t.Errorf("Database.Path = %q, want /tmp/study.db", cfg.Database.Path)
	}
	if !reflect.DeepEqual(cfg.Catalog.AlcoholicBeers, []string{"Pilsner", "Stout"}) {
		t.Errorf("Catalog.AlcoholicBeers = %v", cfg.Catalog.AlcoholicBeers)
	}
	// Unset file sections keep defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want env override 4000", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, true},
		{"unknown predictor", func(c *Config) { c.Predictor.Type = "oracle" }, true},
		{"zero top k", func(c *Config) { c.Predictor.TopK = 0 }, true},
		{"weights not summing to 1", func(c *Config) {
			c.Predictor.SimilarityWeight = 0.5
			c.Predictor.RatingWeight = 0.3
		}, true},
		{"llm without model", func(c *Config) {
			c.Predictor.Type = "llm"
			c.Predictor.LLM.Model = ""
		}, true},
		{"llm defaults valid", func(c *Config) { c.Predictor.Type = "llm" }, false},
		{"empty catalog", func(c *Config) { c.Catalog.AlcoholicBeers = nil }, true},
		{"duplicate gender label", func(c *Config) {
			c.Labels.Genders = []string{"male", "male"}
		}, true},
		{"blank frequency label", func(c *Config) {
			c.Labels.Frequencies = []string{"never", "  "}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	sc := ServerConfig{Host: "127.0.0.1", Port: 8080, Timeout: time.Second}
	if got := sc.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}
