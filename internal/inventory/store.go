// Package inventory owns the authoritative collection of inventory items.
package inventory

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"rasoimate/internal/freshness"
	"rasoimate/internal/models"
)

// Persistence is the durable storage port for the inventory collection.
// The store writes the full collection after every mutation; any key-value
// medium that can round-trip the item slice satisfies the contract.
type Persistence interface {
	Load() ([]models.InventoryItem, error)
	Save(items []models.InventoryItem) error
}

// Observer receives a snapshot of the full collection after every change
type Observer func(items []models.InventoryItem)

// Store holds the inventory collection and keeps every item's status
// consistent with its expiry date. All access is serialized by a single
// mutex; mutations and the scheduled recompute each read-modify-persist
// under the lock so concurrent callers cannot lose updates.
type Store struct {
	mu        sync.Mutex
	items     []models.InventoryItem
	persist   Persistence
	observers []Observer
	now       func() time.Time
}

// NewStore creates a store backed by the given persistence medium and loads
// the persisted collection. Malformed persisted data resets the collection
// to seeded samples rather than failing startup. An empty (but readable)
// persisted collection is respected as-is.
func NewStore(persist Persistence, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{persist: persist, now: now}

	items, err := persist.Load()
	if err != nil {
		log.Printf("inventory: resetting to sample data: %v", err)
		items = nil
	}
	if items == nil {
		items = SampleItems(now())
		if err := persist.Save(items); err != nil {
			log.Printf("inventory: failed to persist sample data: %v", err)
		}
	}

	today := now()
	for i := range items {
		items[i].Status = freshness.Classify(items[i].ExpiryDate, today)
	}
	s.items = items
	return s
}

// Subscribe registers an observer that is called with the full collection
// after every mutation and after each scheduled recomputation.
func (s *Store) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Items returns a copy of the current collection
func (s *Store) Items() []models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add validates the draft, assigns a fresh id, derives the status and
// persists the grown collection.
func (s *Store) Add(draft models.ItemDraft) (models.InventoryItem, error) {
	if draft.Name == "" {
		return models.InventoryItem{}, models.NewValidationError("name", "must not be empty")
	}
	expiry, err := parseOptionalExpiry(draft.Expiry)
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.InventoryItem{
		ID:         uuid.NewString(),
		Name:       draft.Name,
		Quantity:   draft.Quantity,
		ExpiryDate: expiry,
		Status:     freshness.Classify(expiry, s.now()),
		Image:      draft.Image,
	}
	s.items = append(s.items, item)
	s.persistLocked()
	s.notifyLocked()
	return item, nil
}

// Update merges the patch into the identified item. The status is rederived
// after every merge, so it transitions on the same call when the expiry
// changes and a manually supplied status can never stick. An unknown id
// yields a NotFoundError, which callers may choose to ignore.
func (s *Store) Update(id string, patch models.ItemPatch) (models.InventoryItem, error) {
	expiry, expirySet, err := parsePatchExpiry(patch.Expiry)
	if err != nil {
		return models.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.items[i].Name = *patch.Name
		}
		if patch.Quantity != nil {
			s.items[i].Quantity = *patch.Quantity
		}
		if patch.Image != nil {
			s.items[i].Image = *patch.Image
		}
		if expirySet {
			s.items[i].ExpiryDate = expiry
		}
		s.items[i].Status = freshness.Classify(s.items[i].ExpiryDate, s.now())
		s.persistLocked()
		s.notifyLocked()
		return s.items[i], nil
	}
	return models.InventoryItem{}, &models.NotFoundError{ID: id}
}

// Delete removes the identified item. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			s.notifyLocked()
			return
		}
	}
}

// RecomputeStatuses reclassifies every item against the current date. It is
// invoked by the midnight scheduler so displayed statuses roll over without
// a user action. Persisting and notifying only happen when a status actually
// changed, which makes back-to-back runs idempotent.
func (s *Store) RecomputeStatuses() {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	changed := false
	for i := range s.items {
		status := freshness.Classify(s.items[i].ExpiryDate, today)
		if s.items[i].Status != status {
			s.items[i].Status = status
			changed = true
		}
	}
	if changed {
		s.persistLocked()
		s.notifyLocked()
	}
}

func (s *Store) snapshot() []models.InventoryItem {
	out := make([]models.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persistLocked() {
	if err := s.persist.Save(s.snapshot()); err != nil {
		log.Printf("inventory: failed to persist collection: %v", err)
	}
}

func (s *Store) notifyLocked() {
	snap := s.snapshot()
	for _, obs := range s.observers {
		obs(snap)
	}
}

func parseOptionalExpiry(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := freshness.ParseExpiry(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parsePatchExpiry distinguishes "leave the expiry alone" (nil pointer) from
// "clear it" (pointer to empty string) from "set it" (pointer to a date).
func parsePatchExpiry(raw *string) (*time.Time, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	if *raw == "" {
		return nil, true, nil
	}
	t, err := freshness.ParseExpiry(*raw)
	if err != nil {
		return nil, false, err
	}
	return &t, true, nil
}
