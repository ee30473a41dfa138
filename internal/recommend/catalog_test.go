// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import "testing"

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name         string
		alcoholic    []string
		nonAlcoholic []string
		wantErr      bool
	}{
		{
			name:         "disjoint subsets",
			alcoholic:    []string{"Beer 1", "Beer 2"},
			nonAlcoholic: []string{"Beer A"},
			wantErr:      false,
		},
		{
			name:    "empty catalog",
			wantErr: true,
		},
		{
			name:      "duplicate within subset",
			alcoholic: []string{"Beer 1", "Beer 1"},
			wantErr:   true,
		},
		{
			name:         "duplicate across subsets",
			alcoholic:    []string{"Beer 1"},
			nonAlcoholic: []string{"Beer 1"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := NewCatalog(tt.alcoholic, tt.nonAlcoholic)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewCatalog() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCatalog() error = %v", err)
			}
			if got := cat.Size(); got != len(tt.alcoholic)+len(tt.nonAlcoholic) {
				t.Errorf("Size() = %d, want %d", got, len(tt.alcoholic)+len(tt.nonAlcoholic))
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	if got := len(cat.Items(true)); got != 9 {
		t.Errorf("alcoholic items = %d, want 9", got)
	}
	if got := len(cat.Items(false)); got != 9 {
		t.Errorf("non-alcoholic items = %d, want 9", got)
	}

	if drinks, ok := cat.CategoryOf("Beer 1"); !ok || !drinks {
		t.Errorf("CategoryOf(Beer 1) = (%v, %v), want (true, true)", drinks, ok)
	}
	if drinks, ok := cat.CategoryOf("Beer A"); !ok || drinks {
		t.Errorf("CategoryOf(Beer A) = (%v, %v), want (false, true)", drinks, ok)
	}
	if cat.Contains("Beer Z") {
		t.Error("Contains(Beer Z) = true, want false")
	}

	// Canonical order is the tie-break order.
	if items := cat.Items(true); items[0] != "Beer 1" || items[8] != "Beer 9" {
		t.Errorf("alcoholic order = %v, want Beer 1 .. Beer 9", items)
	}
}
