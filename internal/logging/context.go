// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// requestIDKey is the context key for request correlation IDs.
type requestIDKey struct{}

// WithRequestID returns a context carrying the given correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID extracts the correlation ID from the context, if any.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger enriched with the context's correlation ID.
// Use this in request paths so log lines can be tied back to a request.
//
//	logging.Ctx(ctx).Info().Str("item", name).Msg("rating stored")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := Logger()
	if id := RequestID(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	return &logger
}
