// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package validation

import (
	"strings"
	"testing"
)

type ratingPayload struct {
	UserID string `validate:"required,max=128"`
	Rating int    `validate:"required,min=1,max=10"`
	Score  *int   `validate:"required,min=0,max=10"`
}

func TestValidateStructPass(t *testing.T) {
	score := 0
	payload := ratingPayload{UserID: "u-1", Rating: 7, Score: &score}

	if err := ValidateStruct(&payload); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateStructExplicitZeroPointer(t *testing.T) {
	// A pointer to zero satisfies required; a nil pointer does not.
	payload := ratingPayload{UserID: "u-1", Rating: 7}

	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected failure for nil Score")
	}
	if got := err.Errors()[0].Field(); got != "Score" {
		t.Errorf("failed field = %q, want Score", got)
	}
}

func TestValidateStructSingleError(t *testing.T) {
	score := 5
	payload := ratingPayload{UserID: "u-1", Rating: 11, Score: &score}

	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "at most 10") {
		t.Errorf("Message = %q, want max message", apiErr.Message)
	}
	if apiErr.Details["field"] != "Rating" {
		t.Errorf("Details field = %v, want Rating", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	score := 12
	payload := ratingPayload{Rating: 0, Score: &score}

	err := ValidateStruct(&payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(err.Errors()), err)
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error response missing fields detail")
	}
	if !strings.Contains(apiErr.Message, "UserID") || !strings.Contains(apiErr.Message, "Rating") {
		t.Errorf("combined message missing fields: %q", apiErr.Message)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned distinct instances")
	}
}
