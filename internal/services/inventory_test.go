package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail-sense/internal/database"
	"retail-sense/internal/models"
	"retail-sense/internal/pricing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func seedInventory(t *testing.T, db *gorm.DB, body string) *models.Inventory {
	t.Helper()
	inv, err := CreateInventory(context.Background(), db, decode[InventoryInput](t, body))
	require.NoError(t, err)
	return inv
}

const linenShirt = `{
	"ItemName": "Linen Shirt", "Category": "Shirts", "Quantity": 150, "reorderThreshold": "100",
	"Location": "A-12", "Brand": "Nordic", "Sizes": "S, M, L", "Colors": ["White", "Sand"],
	"Gender": "Men", "Style": "Casual", "SupplierName": "Loom Co", "SupplierContact": "0771234567",
	"image": "C:\\fakepath\\linen.png", "unitPrice": 50
}`

func TestCreateInventory(t *testing.T) {
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)

	assert.Len(t, inv.ID, 24)
	assert.Equal(t, uint(1), inv.InventoryID)
	assert.Equal(t, pricing.StatusInStock, inv.StockStatus)
	assert.Equal(t, []string{"S", "M", "L"}, inv.Sizes)
	assert.Equal(t, "uploads/inventory/linen.png", inv.Image)

	second := seedInventory(t, db, linenShirt)
	assert.Equal(t, uint(2), second.InventoryID)
}

func TestCreateInventoryRejectsMissingImage(t *testing.T) {
	db := newTestDB(t)
	in := decode[InventoryInput](t, linenShirt)
	in.Image = " "

	_, err := CreateInventory(context.Background(), db, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "Image is required")
}

func TestRetrieveRevertRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)

	res, err := UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, `{"action": "retrieve", "Quantity": 40}`))
	require.NoError(t, err)
	assert.Equal(t, 110, res.Inventory.Quantity)
	assert.Equal(t, pricing.StatusInStock, res.Inventory.StockStatus)
	require.NotNil(t, res.Retrieved)
	assert.Equal(t, 40, res.Retrieved.RetrievedQuantity)
	assert.Equal(t, inv.InventoryID, res.Retrieved.InventoryID)
	assert.Equal(t, 50.0, *res.Retrieved.FinalPrice)

	staged, err := ListRetrieved(ctx, db)
	require.NoError(t, err)
	require.Len(t, staged, 1)

	back, err := RevertRetrieved(ctx, db, res.Retrieved.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, back.Quantity)

	staged, err = ListRetrieved(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, staged)

	_, err = RevertRetrieved(ctx, db, res.Retrieved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevertWithoutSourceInventory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)

	res, err := UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, `{"action": "retrieve", "Quantity": 5}`))
	require.NoError(t, err)
	require.NoError(t, DeleteInventory(ctx, db, inv.InventoryID))

	_, err = RevertRetrieved(ctx, db, res.Retrieved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "source inventory 1")

	staged, err := GetRetrieved(ctx, db, res.Retrieved.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, staged.RetrievedQuantity)
}

func TestRetrieveMoreThanStock(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)

	_, err := UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, `{"action": "retrieve", "Quantity": 151}`))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, `{"action": "retrieve", "Quantity": 0}`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	got, err := GetInventory(ctx, db, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, got.Inventory.Quantity)

	var n int64
	require.NoError(t, db.Model(&models.RetrievedInventory{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestStockStatusFollowsQuantity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)

	steps := []struct {
		body   string
		qty    int
		status string
	}{
		{`{"action": "retrieve", "Quantity": 50}`, 100, pricing.StatusLowStock},
		{`{"action": "retrieve", "Quantity": 100}`, 0, pricing.StatusOutOfStock},
		{`{"action": "add", "Quantity": "101", "unitPrice": 55}`, 101, pricing.StatusInStock},
		{`{"Quantity": 7}`, 7, pricing.StatusLowStock},
	}
	for _, s := range steps {
		res, err := UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, s.body))
		require.NoError(t, err, s.body)
		assert.Equal(t, s.qty, res.Inventory.Quantity, s.body)
		assert.Equal(t, s.status, res.Inventory.StockStatus, s.body)
	}

	low, err := ListLowStock(ctx, db)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 55.0, *low[0].UnitPrice)

	upd, err := UpdateInventory(ctx, db, inv.InventoryID, decode[InventoryUpdate](t, `{"Quantity": 500, "Brand": "Fjord"}`))
	require.NoError(t, err)
	assert.Equal(t, pricing.StatusInStock, upd.StockStatus)
	assert.Equal(t, "Fjord", upd.Brand)
	assert.Equal(t, "Linen Shirt", upd.ItemName)
}

func TestGetInventoryFallbacks(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)

	byID, err := GetInventory(ctx, db, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.InventoryID, byID.Inventory.InventoryID)

	byNumber, err := GetInventory(ctx, db, "1")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, byNumber.Inventory.ID)

	res, err := UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, `{"action": "retrieve", "Quantity": 5}`))
	require.NoError(t, err)
	staged, err := GetInventory(ctx, db, res.Retrieved.ID)
	require.NoError(t, err)
	assert.Nil(t, staged.Inventory)
	assert.Equal(t, 5, staged.Retrieved.RetrievedQuantity)

	_, err = GetInventory(ctx, db, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingInventoryChangesNothing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedInventory(t, db, linenShirt)

	err := DeleteInventory(ctx, db, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := ListInventory(ctx, db, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	assert.ErrorIs(t, DeleteRetrieved(ctx, db, "64b7f0c2a1b2c3d4e5f60718"), ErrNotFound)

	require.NoError(t, DeleteInventory(ctx, db, 1))
	_, err = GetInventory(ctx, db, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListInventoryPaging(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	for i := 0; i < 12; i++ {
		seedInventory(t, db, linenShirt)
	}

	page, err := ListInventory(ctx, db, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, uint(6), page.Items[0].InventoryID)

	_, err = ListInventoryByCategory(ctx, db, "Shoes")
	assert.ErrorIs(t, err, ErrNotFound)
	shirts, err := ListInventoryByCategory(ctx, db, "Shirts")
	require.NoError(t, err)
	assert.Len(t, shirts, 12)
}

func TestRetrievedPricing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	inv := seedInventory(t, db, linenShirt)
	res, err := UpdateStockStatus(ctx, db, inv.InventoryID, decode[StockUpdate](t, `{"action": "retrieve", "Quantity": 3}`))
	require.NoError(t, err)

	r, err := SendToStore(ctx, db, res.Retrieved.ID, 65)
	require.NoError(t, err)
	assert.Equal(t, 65.0, *r.UnitPrice)
	assert.Equal(t, 65.0, *r.FinalPrice)

	_, err = SendToStore(ctx, db, res.Retrieved.ID, 0)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	r, err = UpdateFinalPrice(ctx, db, res.Retrieved.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *r.FinalPrice)

	_, err = UpdateFinalPrice(ctx, db, "64b7f0c2a1b2c3d4e5f60718", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
