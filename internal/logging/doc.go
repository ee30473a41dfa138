// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package logging provides centralized zerolog-based logging.
//
// The global logger is configured once at startup and used through the
// package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("component", "api").Msg("server starting")
//
// Request paths should prefer the context-aware variant so the correlation
// ID set by the HTTP middleware appears on every line:
//
//	logging.Ctx(ctx).Error().Err(err).Msg("prediction failed")
//
// Always terminate log chains with .Msg() or .Send(), and prefer structured
// fields over string formatting.
package logging
