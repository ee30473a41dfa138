// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/hopmatch/hopmatch/internal/config"
	"github.com/hopmatch/hopmatch/internal/recommend"
)

// Database wraps the SQLite connection and provides the persistence
// operations for the rating study. It implements recommend.ObservationSource.
type Database struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// schema creates the ratings table. Ratings are append-only; re-ratings of
// the same (user, beer) pair insert a new row and the read path keeps the
// most recent one.
const schema = `
CREATE TABLE IF NOT EXISTS beer_ratings (
    id                    INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id               TEXT    NOT NULL,
    beer_name             TEXT    NOT NULL,
    rating                INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 10),
    age                   INTEGER NOT NULL,
    gender                TEXT    NOT NULL,
    latitude              REAL    NOT NULL,
    longitude             REAL    NOT NULL,
    dark_white_chocolate  INTEGER NOT NULL,
    curry_cucumber        INTEGER NOT NULL,
    vanilla_lemon         INTEGER NOT NULL,
    caramel_wasabi        INTEGER NOT NULL,
    blue_mozzarella       INTEGER NOT NULL,
    sparkling_sweet       INTEGER NOT NULL,
    barbecue_ketchup      INTEGER NOT NULL,
    tropical_winter       INTEGER NOT NULL,
    early_night           INTEGER NOT NULL,
    beer_frequency        TEXT    NOT NULL,
    drinks_alcohol        INTEGER NOT NULL,
    submitted_at          TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_beer_ratings_user_beer
    ON beer_ratings (user_id, beer_name);
`

// New opens (or creates) the SQLite database at cfg.Path, applies the
// connection pragmas, and ensures the schema exists.
func New(cfg config.DatabaseConfig, logger zerolog.Logger) (*Database, error) {
	db, err := sqlx.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids SQLITE_BUSY between the write and read paths.
	db.SetMaxOpenConns(1)

	busyMS := cfg.BusyTimeout.Milliseconds()
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyMS),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info().Str("path", cfg.Path).Msg("Database opened")

	return &Database{db: db, logger: logger}, nil
}

// ratingRow is the row shape of the beer_ratings table.
type ratingRow struct {
	ID                 int64     `db:"id"`
	UserID             string    `db:"user_id"`
	BeerName           string    `db:"beer_name"`
	Rating             int       `db:"rating"`
	Age                int       `db:"age"`
	Gender             string    `db:"gender"`
	Latitude           float64   `db:"latitude"`
	Longitude          float64   `db:"longitude"`
	DarkWhiteChocolate int       `db:"dark_white_chocolate"`
	CurryCucumber      int       `db:"curry_cucumber"`
	VanillaLemon       int       `db:"vanilla_lemon"`
	CaramelWasabi      int       `db:"caramel_wasabi"`
	BlueMozzarella     int       `db:"blue_mozzarella"`
	SparklingSweet     int       `db:"sparkling_sweet"`
	BarbecueKetchup    int       `db:"barbecue_ketchup"`
	TropicalWinter     int       `db:"tropical_winter"`
	EarlyNight         int       `db:"early_night"`
	BeerFrequency      string    `db:"beer_frequency"`
	DrinksAlcohol      bool      `db:"drinks_alcohol"`
	SubmittedAt        time.Time `db:"submitted_at"`
}

// observation converts the row into the engine's observation shape.
func (r ratingRow) observation() recommend.Observation {
	return recommend.Observation{
		UserID: r.UserID,
		Item:   r.BeerName,
		Rating: r.Rating,
		Profile: recommend.Profile{
			Age:       r.Age,
			Gender:    r.Gender,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Tastes: recommend.TasteScores{
				DarkWhiteChocolate: r.DarkWhiteChocolate,
				CurryCucumber:      r.CurryCucumber,
				VanillaLemon:       r.VanillaLemon,
				CaramelWasabi:      r.CaramelWasabi,
				BlueMozzarella:     r.BlueMozzarella,
				SparklingSweet:     r.SparklingSweet,
				BarbecueKetchup:    r.BarbecueKetchup,
				TropicalWinter:     r.TropicalWinter,
				EarlyNight:         r.EarlyNight,
			},
			Frequency:     r.BeerFrequency,
			DrinksAlcohol: r.DrinksAlcohol,
		},
		SubmittedAt: r.SubmittedAt,
	}
}

const insertRatingQuery = `
INSERT INTO beer_ratings (
    user_id, beer_name, rating, age, gender, latitude, longitude,
    dark_white_chocolate, curry_cucumber, vanilla_lemon, caramel_wasabi,
    blue_mozzarella, sparkling_sweet, barbecue_ketchup, tropical_winter,
    early_night, beer_frequency, drinks_alcohol, submitted_at
) VALUES (
    :user_id, :beer_name, :rating, :age, :gender, :latitude, :longitude,
    :dark_white_chocolate, :curry_cucumber, :vanilla_lemon, :caramel_wasabi,
    :blue_mozzarella, :sparkling_sweet, :barbecue_ketchup, :tropical_winter,
    :early_night, :beer_frequency, :drinks_alcohol, :submitted_at
)`

// InsertRating stores one observation and returns the new row ID.
func (d *Database) InsertRating(ctx context.Context, obs recommend.Observation) (int64, error) {
	row := ratingRow{
		UserID:             obs.UserID,
		BeerName:           obs.Item,
		Rating:             obs.Rating,
		Age:                obs.Profile.Age,
		Gender:             obs.Profile.Gender,
		Latitude:           obs.Profile.Latitude,
		Longitude:          obs.Profile.Longitude,
		DarkWhiteChocolate: obs.Profile.Tastes.DarkWhiteChocolate,
		CurryCucumber:      obs.Profile.Tastes.CurryCucumber,
		VanillaLemon:       obs.Profile.Tastes.VanillaLemon,
		CaramelWasabi:      obs.Profile.Tastes.CaramelWasabi,
		BlueMozzarella:     obs.Profile.Tastes.BlueMozzarella,
		SparklingSweet:     obs.Profile.Tastes.SparklingSweet,
		BarbecueKetchup:    obs.Profile.Tastes.BarbecueKetchup,
		TropicalWinter:     obs.Profile.Tastes.TropicalWinter,
		EarlyNight:         obs.Profile.Tastes.EarlyNight,
		BeerFrequency:      obs.Profile.Frequency,
		DrinksAlcohol:      obs.Profile.DrinksAlcohol,
		SubmittedAt:        obs.SubmittedAt,
	}

	res, err := d.db.NamedExecContext(ctx, insertRatingQuery, row)
	if err != nil {
		return 0, fmt.Errorf("failed to insert rating: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read insert id: %w", err)
	}

	return id, nil
}

// observationsQuery keeps the most recent row per (user, beer) pair. Row IDs
// are monotonic, so MAX(id) within the group is the latest submission.
const observationsQuery = `
SELECT r.*
FROM beer_ratings r
JOIN (
    SELECT user_id, beer_name, MAX(id) AS max_id
    FROM beer_ratings
    GROUP BY user_id, beer_name
) latest ON r.id = latest.max_id
WHERE r.rating > 0
ORDER BY r.id`

// Observations returns the current observation snapshot: at most one row per
// (user, beer) pair, most recent wins, positive ratings only.
func (d *Database) Observations(ctx context.Context) ([]recommend.Observation, error) {
	var rows []ratingRow
	if err := d.db.SelectContext(ctx, &rows, observationsQuery); err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}

	observations := make([]recommend.Observation, len(rows))
	for i, row := range rows {
		observations[i] = row.observation()
	}

	return observations, nil
}

// Stats holds aggregate counts over the stored ratings.
type Stats struct {
	TotalRatings   int `db:"total_ratings"`
	EstimatedUsers int `db:"estimated_users"`
}

// Stats returns the total number of rating rows and the number of distinct
// users observed.
func (d *Database) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := d.db.GetContext(ctx, &s, `
SELECT COUNT(*) AS total_ratings,
       COUNT(DISTINCT user_id) AS estimated_users
FROM beer_ratings`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return s, nil
}

// Ping verifies the database connection.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// compile-time interface check
var _ recommend.ObservationSource = (*Database)(nil)
