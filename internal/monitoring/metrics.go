// Package monitoring exposes Prometheus metrics for the kitchen service.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rasoimate_recipe_generations_total",
		Help: "Recipes generated, labeled by source (remote or fallback).",
	}, []string{"source"})

	inventoryMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rasoimate_inventory_mutations_total",
		Help: "Inventory mutations, labeled by operation (add, update, delete).",
	}, []string{"op"})

	inventoryItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rasoimate_inventory_items",
		Help: "Current number of tracked inventory items.",
	})

	statusRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rasoimate_status_recomputes_total",
		Help: "Scheduled freshness recompute passes.",
	})

	websocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rasoimate_websocket_clients",
		Help: "Connected inventory-feed websocket clients.",
	})

	donationsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rasoimate_donations_total",
		Help: "Donation actions recorded.",
	})
)

// RecipeGenerated records a generated recipe by source
func RecipeGenerated(source string) {
	recipeGenerations.WithLabelValues(source).Inc()
}

// InventoryMutated records an inventory mutation and the resulting size
func InventoryMutated(op string, size int) {
	inventoryMutations.WithLabelValues(op).Inc()
	inventoryItems.Set(float64(size))
}

// StatusRecomputed records a scheduled recompute pass
func StatusRecomputed() {
	statusRecomputes.Inc()
}

// WebsocketClientConnected adjusts the connected-clients gauge
func WebsocketClientConnected(delta int) {
	websocketClients.Add(float64(delta))
}

// DonationRecorded records a donation action
func DonationRecorded() {
	donationsRecorded.Inc()
}
