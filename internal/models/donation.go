package models

// DonationStats tracks progress toward the monthly meal-donation goal.
// Percentage is derived from the meal counts and clamped to 100.
type DonationStats struct {
	CurrentMeals int     `json:"currentMeals"`
	TargetMeals  int     `json:"targetMeals"`
	Percentage   float64 `json:"percentage"`
}

// Location is a geographic coordinate pair
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Shelter represents a nearby shelter accepting surplus food donations.
// Shelters are static reference data and are never mutated.
type Shelter struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Distance string   `json:"distance"`
	Location Location `json:"location"`
}
