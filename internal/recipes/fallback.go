// Package recipes generates recipes from ingredient lists, remotely when the
// language-model service is reachable and locally when it is not.
package recipes

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"rasoimate/internal/models"
)

// Style pools for the fallback builder. The skeleton of the recipe is fixed;
// these only vary the flavor text between invocations.
var (
	fallbackFats       = []string{"oil", "olive oil", "ghee", "butter"}
	fallbackMethods    = []string{"sauté", "stir-fry", "simmer", "pan-roast", "quick braise"}
	fallbackCookTimes  = []int{8, 10, 12, 14, 15, 18}
	fallbackSeasonings = []string{
		"salt and pepper to taste",
		"a pinch of chili flakes",
		"mixed herbs",
		"garam masala",
		"Italian seasoning",
	}
	aromaticNames = []string{"onion", "garlic", "ginger"}
)

// BuildFallback constructs a recipe from the given ingredient names without
// any network dependency. The step skeleton is always the same; the cooking
// verb, fat, seasoning and timing are drawn from rng. It is total for any
// non-empty ingredient list: callers validate emptiness upstream, and even a
// degenerate list of blank strings still yields a well-formed recipe.
func BuildFallback(ingredients []string, rng *rand.Rand) models.Recipe {
	mains := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			mains = append(mains, trimmed)
		}
	}

	base := strings.Join(mains, " ")
	if base == "" {
		base = "dish"
	}

	method := fallbackMethods[rng.Intn(len(fallbackMethods))]
	cookTime := fallbackCookTimes[rng.Intn(len(fallbackCookTimes))]
	fat := fallbackFats[rng.Intn(len(fallbackFats))]
	seasoning := fallbackSeasonings[rng.Intn(len(fallbackSeasonings))]

	heat := "heat"
	if rng.Intn(2) == 0 {
		heat = "to medium-high heat"
	}

	steps := []string{
		"Rinse, peel, and chop your ingredients for even cooking.",
		fmt.Sprintf("Warm %s in a wide pan over medium %s until shimmering.", fat, heat),
	}
	if aromatics := detectAromatics(mains); len(aromatics) > 0 {
		steps = append(steps, fmt.Sprintf("Add %s and cook 1-2 minutes until fragrant.", strings.Join(aromatics, " and ")))
	}
	if len(mains) > 0 {
		low := cookTime / 2
		if low < 2 {
			low = 2
		}
		steps = append(steps, fmt.Sprintf("Add %s and %s for %d-%d minutes.", strings.Join(mains, ", "), method, low, cookTime))
	}
	steps = append(steps,
		fmt.Sprintf("Season with %s, adjusting to taste.", seasoning),
		"If the pan gets dry, splash in water or stock, then serve warm.",
	)

	name := "Simple Dish"
	if len(mains) > 0 {
		name = "Simple " + mains[0]
	}
	subject := strings.Join(mains, " and ")
	if subject == "" {
		subject = "pantry staples"
	}

	return models.Recipe{
		ID:          uuid.NewString(),
		Name:        name,
		Description: fmt.Sprintf("A quick %s with %s.", method, subject),
		Ingredients: append(append([]string{}, mains...), seasoning, fat),
		Steps:       steps,
		Image:       foodImageURL(base),
	}
}

// detectAromatics scans the ingredient names case-insensitively for the
// aromatic staples worth their own sizzling step.
func detectAromatics(mains []string) []string {
	var found []string
	for _, aromatic := range aromaticNames {
		for _, main := range mains {
			if strings.Contains(strings.ToLower(main), aromatic) {
				found = append(found, aromatic)
				break
			}
		}
	}
	return found
}

// foodImageURL synthesizes a stable image reference for a dish. The FNV
// hash of the query acts as a selection signature so the same dish keeps
// the same picture across requests.
func foodImageURL(query string) string {
	h := fnv.New32a()
	h.Write([]byte(query))
	sig := h.Sum32() & 0x7fffffff // fold to a non-negative signed range
	return fmt.Sprintf("https://source.unsplash.com/1200x600/?food,%s&sig=%d", url.QueryEscape(query), sig)
}
