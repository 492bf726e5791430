package inventory

import "rasoimate/internal/models"

// MemoryPersistence is an in-process implementation of the persistence
// port. It backs tests and runs without a database file. A nil stored
// slice means "nothing persisted yet", which makes a fresh instance seed
// sample data; an empty non-nil slice is a valid empty collection.
type MemoryPersistence struct {
	stored  []models.InventoryItem
	loadErr error
	saves   int
}

// NewMemoryPersistence creates an empty in-memory persistence medium
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

// NewMemoryPersistenceWithItems creates a medium pre-loaded with items
func NewMemoryPersistenceWithItems(items []models.InventoryItem) *MemoryPersistence {
	if items == nil {
		items = []models.InventoryItem{}
	}
	return &MemoryPersistence{stored: items}
}

// NewMemoryPersistenceWithError creates a medium whose next Load fails,
// simulating malformed stored data.
func NewMemoryPersistenceWithError(err error) *MemoryPersistence {
	return &MemoryPersistence{loadErr: err}
}

// Load returns the stored collection
func (m *MemoryPersistence) Load() ([]models.InventoryItem, error) {
	if m.loadErr != nil {
		err := m.loadErr
		m.loadErr = nil
		return nil, err
	}
	if m.stored == nil {
		return nil, nil
	}
	out := make([]models.InventoryItem, len(m.stored))
	copy(out, m.stored)
	return out, nil
}

// Save replaces the stored collection
func (m *MemoryPersistence) Save(items []models.InventoryItem) error {
	stored := make([]models.InventoryItem, len(items))
	copy(stored, items)
	m.stored = stored
	m.saves++
	return nil
}

// Saves reports how many times Save has been called
func (m *MemoryPersistence) Saves() int {
	return m.saves
}
