package models

import "time"

// FreshnessStatus represents the derived freshness of an inventory item
type FreshnessStatus string

const (
	// Freshness statuses
	StatusFresh    FreshnessStatus = "fresh"
	StatusExpiring FreshnessStatus = "expiring"
	StatusExpired  FreshnessStatus = "expired"
)

// InventoryItem represents a single tracked item of food inventory.
// Status is derived from ExpiryDate by the freshness classifier; it is
// recomputed on every mutation and on the daily recompute pass and is
// never settable independently of the expiry date.
type InventoryItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   string          `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry,omitempty"`
	Status     FreshnessStatus `json:"status"`
	Image      string          `json:"image,omitempty"`
}

// ItemDraft carries the caller-supplied fields for a new inventory item.
// The store assigns the ID and derives the status.
type ItemDraft struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Expiry   string `json:"expiry,omitempty"`
	Image    string `json:"image,omitempty"`
}

// ItemPatch carries a partial update for an existing item. Nil fields are
// left untouched; a non-nil empty Expiry clears the expiry date.
type ItemPatch struct {
	Name     *string `json:"name,omitempty"`
	Quantity *string `json:"quantity,omitempty"`
	Expiry   *string `json:"expiry,omitempty"`
	Image    *string `json:"image,omitempty"`
}
