package inventory

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasoimate/internal/models"
)

func expiryString(offsetDays int) string {
	return time.Now().AddDate(0, 0, offsetDays).Format("2006-01-02")
}

func TestNewStoreSeedsSampleData(t *testing.T) {
	persist := NewMemoryPersistence()
	store := NewStore(persist, nil)

	items := store.Items()
	require.Len(t, items, 4)

	statuses := map[string]models.FreshnessStatus{}
	for _, item := range items {
		statuses[item.Name] = item.Status
	}
	assert.Equal(t, models.StatusFresh, statuses["Rice"])
	assert.Equal(t, models.StatusExpiring, statuses["Bread"])
	assert.Equal(t, models.StatusExpired, statuses["Milk"])
	assert.Equal(t, models.StatusFresh, statuses["Tomato"])

	// The seed must be written through so a reload sees the same data.
	assert.Equal(t, 1, persist.Saves())
}

func TestNewStoreRespectsEmptyCollection(t *testing.T) {
	persist := NewMemoryPersistenceWithItems([]models.InventoryItem{})
	store := NewStore(persist, nil)
	assert.Empty(t, store.Items(), "a persisted empty collection must not be re-seeded")
}

func TestNewStoreResetsOnMalformedData(t *testing.T) {
	persist := NewMemoryPersistenceWithError(errors.New("stored value is not a sequence"))
	store := NewStore(persist, nil)
	assert.Len(t, store.Items(), 4, "malformed persisted data should reset to samples")
}

func TestAddDerivesStatus(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)

	// Scenario: expiry three days out lands inside the expiring window.
	item, err := store.Add(models.ItemDraft{Name: "Paneer", Quantity: "200 g", Expiry: expiryString(3)})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.StatusExpiring, item.Status)

	item, err = store.Add(models.ItemDraft{Name: "Flour", Quantity: "1 kg"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFresh, item.Status, "no expiry means fresh")

	item, err = store.Add(models.ItemDraft{Name: "Yogurt", Quantity: "500 g", Expiry: expiryString(-1)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, item.Status)
}

func TestAddValidation(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)

	var verr *models.ValidationError

	_, err := store.Add(models.ItemDraft{Quantity: "1 kg"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr), "missing name should be a ValidationError")

	_, err = store.Add(models.ItemDraft{Name: "Rice", Expiry: "soon"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr), "malformed expiry should be a ValidationError")
	assert.Empty(t, store.Items(), "failed adds must not grow the collection")
}

func TestUpdateReclassifiesOnSameCall(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)

	item, err := store.Add(models.ItemDraft{Name: "Milk", Quantity: "1 L", Expiry: expiryString(-1)})
	require.NoError(t, err)
	require.Equal(t, models.StatusExpired, item.Status)

	far := expiryString(30)
	updated, err := store.Update(item.ID, models.ItemPatch{Expiry: &far})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFresh, updated.Status, "status must transition on the update call itself")
}

func TestUpdateClearsExpiry(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)

	item, err := store.Add(models.ItemDraft{Name: "Beans", Quantity: "3 cans", Expiry: expiryString(-5)})
	require.NoError(t, err)

	empty := ""
	updated, err := store.Update(item.ID, models.ItemPatch{Expiry: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ExpiryDate)
	assert.Equal(t, models.StatusFresh, updated.Status)
}

func TestUpdateUnknownID(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)

	_, err := store.Update("no-such-id", models.ItemPatch{})
	var nfe *models.NotFoundError
	assert.True(t, errors.As(err, &nfe))
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)
	item, err := store.Add(models.ItemDraft{Name: "Rice", Quantity: "2 kg"})
	require.NoError(t, err)

	store.Delete("no-such-id")
	assert.Len(t, store.Items(), 1)

	store.Delete(item.ID)
	assert.Empty(t, store.Items())
}

func TestRecomputeIsIdempotent(t *testing.T) {
	persist := NewMemoryPersistence()
	store := NewStore(persist, nil)

	store.RecomputeStatuses()
	first, err := json.Marshal(store.Items())
	require.NoError(t, err)
	savesAfterFirst := persist.Saves()

	store.RecomputeStatuses()
	second, err := json.Marshal(store.Items())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "back-to-back recomputes must serialize identically")
	assert.Equal(t, savesAfterFirst, persist.Saves(), "a no-change recompute must not rewrite storage")
}

func TestRecomputeRollsStatusesOverADayBoundary(t *testing.T) {
	now := time.Now()
	clock := &now
	store := NewStore(NewMemoryPersistenceWithItems(nil), func() time.Time { return *clock })

	item, err := store.Add(models.ItemDraft{Name: "Spinach", Quantity: "1 bunch", Expiry: expiryString(0)})
	require.NoError(t, err)
	require.Equal(t, models.StatusExpiring, item.Status)

	tomorrow := now.AddDate(0, 0, 1)
	clock = &tomorrow
	store.RecomputeStatuses()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.StatusExpired, items[0].Status)
}

func TestObserversSeeEveryMutation(t *testing.T) {
	store := NewStore(NewMemoryPersistenceWithItems(nil), nil)

	var notified [][]models.InventoryItem
	store.Subscribe(func(items []models.InventoryItem) {
		notified = append(notified, items)
	})

	item, err := store.Add(models.ItemDraft{Name: "Rice", Quantity: "2 kg"})
	require.NoError(t, err)
	store.Delete(item.ID)

	require.Len(t, notified, 2)
	assert.Len(t, notified[0], 1)
	assert.Empty(t, notified[1])
}

func TestPersistedAcrossRestart(t *testing.T) {
	persist := NewMemoryPersistenceWithItems(nil)
	store := NewStore(persist, nil)
	_, err := store.Add(models.ItemDraft{Name: "Lentils", Quantity: "1 kg", Expiry: expiryString(20)})
	require.NoError(t, err)

	reloaded := NewStore(persist, nil)
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Lentils", items[0].Name)
	assert.Equal(t, models.StatusFresh, items[0].Status)
}
