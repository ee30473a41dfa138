// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package llm

import (
	"fmt"
	"strings"

	"github.com/hopmatch/hopmatch/internal/recommend"
)

// example is one few-shot demonstration: a similar user's profile and the
// item they rated highest.
type example struct {
	profile recommend.Profile
	item    string
	rating  int
}

// formatProfile renders a profile as the key/value block used in both the
// examples and the query section of the prompt. The category flag is omitted;
// it is already encoded in the candidate item list.
func formatProfile(p recommend.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "age: %d\n", p.Age)
	fmt.Fprintf(&b, "gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "latitude: %.4f\n", p.Latitude)
	fmt.Fprintf(&b, "longitude: %.4f\n", p.Longitude)

	values := [recommend.NumTasteAxes]int{
		p.Tastes.DarkWhiteChocolate,
		p.Tastes.CurryCucumber,
		p.Tastes.VanillaLemon,
		p.Tastes.CaramelWasabi,
		p.Tastes.BlueMozzarella,
		p.Tastes.SparklingSweet,
		p.Tastes.BarbecueKetchup,
		p.Tastes.TropicalWinter,
		p.Tastes.EarlyNight,
	}
	for i, name := range recommend.TasteAxisNames {
		fmt.Fprintf(&b, "%s: %d\n", name, values[i])
	}

	fmt.Fprintf(&b, "beer_frequency: %s", p.Frequency)
	return b.String()
}

// buildPrompt assembles the few-shot prompt: task description, one example
// per similar user, then the query profile.
func buildPrompt(examples []example, query recommend.Profile, items []string) string {
	var b strings.Builder

	b.WriteString("You are a beer recommendation expert. Based on user preferences and demographics, predict which beer they would prefer most.\n\n")
	b.WriteString("The input features represent:\n")
	b.WriteString("- age: the user's age\n")
	b.WriteString("- gender: the user's gender\n")
	b.WriteString("- latitude/longitude: the user's location coordinates\n")
	b.WriteString("- Taste preferences on a 0-10 scale: ")
	b.WriteString(strings.Join(recommend.TasteAxisNames, ", "))
	b.WriteString("\n")
	b.WriteString("- beer_frequency: how often they drink beer (never, once_a_month, once_a_week, multiple_times_a_week)\n\n")

	b.WriteString("Valid answers: ")
	b.WriteString(strings.Join(items, ", "))
	b.WriteString("\n\nHere are examples of similar users and their preferred beers:\n\n")

	for _, ex := range examples {
		b.WriteString("Input:\n")
		b.WriteString(formatProfile(ex.profile))
		b.WriteString("\nOutput: ")
		b.WriteString(ex.item)
		b.WriteString("\n\n")
	}

	b.WriteString("Now predict the preferred beer for this new user. Answer with the beer name only.\n\n")
	b.WriteString("Input:\n")
	b.WriteString(formatProfile(query))
	b.WriteString("\nOutput:")

	return b.String()
}
