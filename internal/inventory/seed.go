package inventory

import (
	"time"

	"rasoimate/internal/freshness"
	"rasoimate/internal/models"
)

// SampleItems builds the collection a first-time user starts with. Expiry
// dates are anchored to the given reference date, not hard-coded, so the
// samples demonstrate all three freshness states no matter when the
// application first runs.
func SampleItems(now time.Time) []models.InventoryItem {
	offset := func(days int) *time.Time {
		d := freshness.Midnight(now).AddDate(0, 0, days)
		return &d
	}

	return []models.InventoryItem{
		{
			ID:         "1",
			Name:       "Rice",
			Quantity:   "2 kg",
			ExpiryDate: offset(14),
			Status:     models.StatusFresh,
			Image:      "https://images.pexels.com/photos/6210751/pexels-photo-6210751.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			ID:         "2",
			Name:       "Bread",
			Quantity:   "6 slices",
			ExpiryDate: offset(3),
			Status:     models.StatusExpiring,
			Image:      "https://images.pexels.com/photos/1775043/pexels-photo-1775043.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			ID:         "3",
			Name:       "Milk",
			Quantity:   "1 L",
			ExpiryDate: offset(-2),
			Status:     models.StatusExpired,
			Image:      "https://images.pexels.com/photos/416464/pexels-photo-416464.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
		{
			ID:         "4",
			Name:       "Tomato",
			Quantity:   "5 pcs",
			ExpiryDate: offset(10),
			Status:     models.StatusFresh,
			Image:      "https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg?auto=compress&cs=tinysrgb&w=400",
		},
	}
}
