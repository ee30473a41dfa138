// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import "fmt"

// Catalog is the fixed item universe, statically partitioned into two
// disjoint subsets keyed by the category flag. Membership is explicit
// configuration, never inferred from item naming or observed data.
type Catalog struct {
	alcoholic    []string
	nonAlcoholic []string
	category     map[string]bool
}

// NewCatalog builds a catalog from the two item subsets. The order of each
// slice is the canonical tie-break order for that category. Duplicate names,
// within or across subsets, are rejected.
func NewCatalog(alcoholic, nonAlcoholic []string) (*Catalog, error) {
	if len(alcoholic) == 0 && len(nonAlcoholic) == 0 {
		return nil, fmt.Errorf("catalog has no items")
	}

	category := make(map[string]bool, len(alcoholic)+len(nonAlcoholic))
	for _, name := range alcoholic {
		if _, ok := category[name]; ok {
			return nil, fmt.Errorf("duplicate catalog item %q", name)
		}
		category[name] = true
	}
	for _, name := range nonAlcoholic {
		if _, ok := category[name]; ok {
			return nil, fmt.Errorf("duplicate catalog item %q", name)
		}
		category[name] = false
	}

	return &Catalog{
		alcoholic:    append([]string(nil), alcoholic...),
		nonAlcoholic: append([]string(nil), nonAlcoholic...),
		category:     category,
	}, nil
}

// DefaultCatalog returns the study's standard catalog: nine alcoholic items
// (Beer 1-9) and nine non-alcoholic items (Beer A-I).
func DefaultCatalog() *Catalog {
	alcoholic := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		alcoholic = append(alcoholic, fmt.Sprintf("Beer %d", i))
	}
	nonAlcoholic := make([]string, 0, 9)
	for c := 'A'; c <= 'I'; c++ {
		nonAlcoholic = append(nonAlcoholic, fmt.Sprintf("Beer %c", c))
	}

	cat, err := NewCatalog(alcoholic, nonAlcoholic)
	if err != nil {
		// Static inputs cannot collide.
		panic(err)
	}
	return cat
}

// Items returns the item subset for the given category flag, in canonical
// order. The returned slice must not be mutated.
func (c *Catalog) Items(drinksAlcohol bool) []string {
	if drinksAlcohol {
		return c.alcoholic
	}
	return c.nonAlcoholic
}

// Contains reports whether the item belongs to the catalog.
func (c *Catalog) Contains(item string) bool {
	_, ok := c.category[item]
	return ok
}

// CategoryOf returns the category flag of an item and whether it is known.
func (c *Catalog) CategoryOf(item string) (drinksAlcohol, ok bool) {
	drinksAlcohol, ok = c.category[item]
	return drinksAlcohol, ok
}

// Size returns the total number of catalog items.
func (c *Catalog) Size() int {
	return len(c.category)
}
