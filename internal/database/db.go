// Package database persists the inventory collection in SQLite via GORM.
package database

import (
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"rasoimate/internal/freshness"
	"rasoimate/internal/models"
)

// itemRecord is the stored form of an inventory item. The collection is an
// ordered sequence; Position preserves insertion order across reloads.
type itemRecord struct {
	ItemID   string `gorm:"column:id;primary_key"`
	Position int    `gorm:"column:position"`
	Name     string `gorm:"column:name"`
	Quantity string `gorm:"column:quantity"`
	Expiry   string `gorm:"column:expiry"` // calendar date, empty when absent
	Status   string `gorm:"column:status"`
	Image    string `gorm:"column:image"`
}

func (itemRecord) TableName() string {
	return "inventory_items"
}

// metaRecord distinguishes "collection was never persisted" (seed samples)
// from "collection was persisted and is empty" (leave it empty).
type metaRecord struct {
	Key   string `gorm:"column:key;primary_key"`
	Value string `gorm:"column:value"`
}

func (metaRecord) TableName() string {
	return "inventory_meta"
}

const initializedKey = "initialized"

// InventoryDB implements the inventory persistence port over SQLite
type InventoryDB struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at the given path and runs
// migrations.
func Open(path string) (*InventoryDB, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&itemRecord{}, &metaRecord{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return &InventoryDB{db: db}, nil
}

// Close closes the underlying database connection
func (d *InventoryDB) Close() error {
	return d.db.Close()
}

// Load reads the persisted collection in insertion order. A nil slice with
// a nil error means no collection has been persisted yet. Rows that cannot
// be mapped back to items surface a PersistenceError, which the store
// recovers from by re-seeding.
func (d *InventoryDB) Load() ([]models.InventoryItem, error) {
	var meta metaRecord
	if err := d.db.Where("key = ?", initializedKey).First(&meta).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, &models.PersistenceError{Op: "load", Err: err}
	}

	var records []itemRecord
	if err := d.db.Order("position").Find(&records).Error; err != nil {
		return nil, &models.PersistenceError{Op: "load", Err: err}
	}

	items := make([]models.InventoryItem, 0, len(records))
	for _, rec := range records {
		item := models.InventoryItem{
			ID:       rec.ItemID,
			Name:     rec.Name,
			Quantity: rec.Quantity,
			Status:   models.FreshnessStatus(rec.Status),
			Image:    rec.Image,
		}
		if rec.Expiry != "" {
			t, err := time.ParseInLocation(freshness.DateLayout, rec.Expiry, time.Local)
			if err != nil {
				return nil, &models.PersistenceError{Op: "load", Err: err}
			}
			item.ExpiryDate = &t
		}
		items = append(items, item)
	}
	return items, nil
}

// Save replaces the persisted collection with the given one
func (d *InventoryDB) Save(items []models.InventoryItem) error {
	tx := d.db.Begin()
	if tx.Error != nil {
		return &models.PersistenceError{Op: "save", Err: tx.Error}
	}

	if err := tx.Delete(itemRecord{}).Error; err != nil {
		tx.Rollback()
		return &models.PersistenceError{Op: "save", Err: err}
	}
	for i, item := range items {
		rec := itemRecord{
			ItemID:   item.ID,
			Position: i,
			Name:     item.Name,
			Quantity: item.Quantity,
			Status:   string(item.Status),
			Image:    item.Image,
		}
		if item.ExpiryDate != nil {
			rec.Expiry = item.ExpiryDate.Format(freshness.DateLayout)
		}
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			return &models.PersistenceError{Op: "save", Err: err}
		}
	}
	if err := tx.Delete(metaRecord{}).Error; err != nil {
		tx.Rollback()
		return &models.PersistenceError{Op: "save", Err: err}
	}
	if err := tx.Create(&metaRecord{Key: initializedKey, Value: "true"}).Error; err != nil {
		tx.Rollback()
		return &models.PersistenceError{Op: "save", Err: err}
	}
	if err := tx.Commit().Error; err != nil {
		return &models.PersistenceError{Op: "save", Err: err}
	}
	return nil
}
