// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package config loads and validates the service configuration using
// koanf v2 with layered sources.
//
// Precedence, lowest to highest:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML config file (CONFIG_PATH or the first of DefaultConfigPaths)
//  3. Environment variables (see envTransformFunc for the mapping)
//
// Slice-valued settings (CORS origins, catalog items, label enumerations)
// accept YAML lists in the file and comma-separated strings in the
// environment.
//
// The catalog and label sections deserve a note: they are configuration, not
// code. The feature encoder derives its one-hot column layout from
// labels.genders and labels.frequencies in declaration order, and the
// recommendation engine partitions candidates by catalog.alcoholic_beers
// versus catalog.non_alcoholic_beers. Changing these lists changes the
// model's feature space, so they should stay fixed for the lifetime of a
// study's data.
package config
