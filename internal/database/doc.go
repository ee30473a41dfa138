// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package database provides SQLite persistence for the rating study using
// sqlx and the pure-Go modernc.org/sqlite driver.
//
// The store is a single append-only table, beer_ratings. Each submission
// inserts a full row (rating plus the submitter's profile); re-ratings are
// new rows, and the read path selects the most recent row per (user, beer)
// pair. This keeps writes trivial and leaves the full submission history
// available for later analysis.
//
// Database implements recommend.ObservationSource, so the recommendation
// engine reads its population snapshot directly from this package.
//
// The connection pool is capped at one connection. SQLite allows a single
// writer, and the driver returns SQLITE_BUSY under concurrent access; one
// connection plus a busy_timeout pragma sidesteps both for this workload's
// modest throughput.
package database
