// Package donations tracks surplus-food donation progress and the static
// directory of nearby shelters.
package donations

import (
	"math/rand"
	"sync"
	"time"

	"rasoimate/internal/models"
	"rasoimate/internal/monitoring"
)

const (
	startingMeals = 357
	targetMeals   = 500

	// Each donate action contributes a handful of meals; the exact count
	// is cosmetic and drawn uniformly from [minIncrement, maxIncrement].
	minIncrement = 5
	maxIncrement = 14
)

// Tracker accumulates donated meals toward the monthly target. Stats live
// in memory only and reset with the process; the durable record of a
// donation belongs to the shelter that picks the food up.
type Tracker struct {
	mu    sync.Mutex
	stats models.DonationStats
	rng   *rand.Rand
}

// NewTracker creates a tracker at the monthly starting point. A nil rng
// defaults to a time-seeded source.
func NewTracker(rng *rand.Rand) *Tracker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := &Tracker{rng: rng}
	t.stats = models.DonationStats{
		CurrentMeals: startingMeals,
		TargetMeals:  targetMeals,
	}
	t.stats.Percentage = percentage(t.stats)
	return t
}

// Stats returns the current donation progress
func (t *Tracker) Stats() models.DonationStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Donate records one donation action and returns the updated progress.
// The meal count is clamped to the target and the percentage to 100.
func (t *Tracker) Donate() models.DonationStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	increment := minIncrement + t.rng.Intn(maxIncrement-minIncrement+1)
	t.stats.CurrentMeals += increment
	if t.stats.CurrentMeals > t.stats.TargetMeals {
		t.stats.CurrentMeals = t.stats.TargetMeals
	}
	t.stats.Percentage = percentage(t.stats)

	monitoring.DonationRecorded()
	return t.stats
}

func percentage(s models.DonationStats) float64 {
	if s.TargetMeals == 0 {
		return 0
	}
	p := float64(s.CurrentMeals) / float64(s.TargetMeals) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Shelters returns the static directory of nearby shelters
func Shelters() []models.Shelter {
	return []models.Shelter{
		{
			ID:       "1",
			Name:     "Hope Shelter",
			Distance: "1.2 km away",
			Location: models.Location{Lat: 19.0820, Lng: 72.8850},
		},
		{
			ID:       "2",
			Name:     "Food for All",
			Distance: "2.5 km away",
			Location: models.Location{Lat: 19.0700, Lng: 72.8700},
		},
		{
			ID:       "3",
			Name:     "Helping Hands",
			Distance: "3.0 km away",
			Location: models.Location{Lat: 19.0850, Lng: 72.8800},
		},
	}
}
