package models

// Recipe represents a generated cooking recipe. Recipes are immutable once
// created; callers append them to their own lists or discard them.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Image       string   `json:"image"`
}

// RecipeRequest represents a recipe-generation request
type RecipeRequest struct {
	Ingredients         []string `json:"ingredients"`
	Servings            int      `json:"servings,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	Cuisine             string   `json:"cuisine,omitempty"`
}
