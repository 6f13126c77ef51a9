package ai

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail-sense/internal/config"
	"retail-sense/internal/database"
	"retail-sense/internal/services"
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

func seed(t *testing.T, db *gorm.DB, body string) {
	t.Helper()
	var in services.InventoryInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	_, err := services.CreateInventory(context.Background(), db, in)
	require.NoError(t, err)
}

func TestExecuteInventoryTools(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db, `{"ItemName": "Linen Shirt", "Category": "Shirts", "Quantity": 150, "reorderThreshold": 100, "Location": "A1",
		"Brand": "Nordic", "Gender": "Men", "Style": "Casual", "SupplierName": "S", "SupplierContact": "C", "image": "a.png", "unitPrice": 50}`)
	seed(t, db, `{"ItemName": "Wool Coat", "Category": "Outerwear", "Quantity": 3, "reorderThreshold": 10, "Location": "B2",
		"Brand": "Fjord", "Gender": "Women", "Style": "Formal", "SupplierName": "S", "SupplierContact": "C", "image": "b.png"}`)

	all, err := ExecuteTool(ctx, db, "check_inventory", nil)
	require.NoError(t, err)
	assert.Len(t, all["inventory"], 2)

	found, err := ExecuteTool(ctx, db, "check_inventory", map[string]any{"query": "LINEN"})
	require.NoError(t, err)
	items := found["inventory"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Linen Shirt", items[0].(map[string]any)["name"])
	assert.Equal(t, 50.0, items[0].(map[string]any)["unitPrice"])

	for _, wildcard := range []string{"%", "_", "linen%shirt", "!"} {
		none, err := ExecuteTool(ctx, db, "check_inventory", map[string]any{"query": wildcard})
		require.NoError(t, err)
		assert.Empty(t, none["inventory"], wildcard)
	}

	low, err := ExecuteTool(ctx, db, "list_low_stock", map[string]any{})
	require.NoError(t, err)
	lowItems := low["lowStock"].([]any)
	require.Len(t, lowItems, 1)
	assert.Equal(t, "Wool Coat", lowItems[0].(map[string]any)["name"])
}

func TestExecuteOrderSummary(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	today := time.Now().Format("2006-01-02")
	res, err := ExecuteTool(ctx, db, "get_order_summary", map[string]any{"start_date": today, "end_date": today})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res["revenue"])
	assert.Equal(t, 0.0, res["sales_count"])

	_, err = ExecuteTool(ctx, db, "get_order_summary", map[string]any{"start_date": "last week", "end_date": today})
	assert.EqualError(t, err, "start_date must be in YYYY-MM-DD format")

	_, err = ExecuteTool(ctx, db, "drop_tables", nil)
	assert.Error(t, err)
}

func TestOrderSummaryCoversWholeEndDay(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	order, err := services.CreateOrder(ctx, db, decodeOrder(t))
	require.NoError(t, err)
	late := time.Date(2026, 3, 4, 23, 59, 59, 500_000_000, time.Local)
	require.NoError(t, db.Model(order).UpdateColumn("created_at", late).Error)

	res, err := ExecuteTool(ctx, db, "get_order_summary", map[string]any{"start_date": "2026-03-04", "end_date": "2026-03-04"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res["sales_count"])
	assert.Equal(t, 25.0, res["revenue"])
	assert.True(t, services.EndOfDay(time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)).After(late))
}

func decodeOrder(t *testing.T) services.OrderInput {
	t.Helper()
	var in services.OrderInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"userId": "7",
		"items": [{"itemId": "A1", "quantity": 1, "price": 25, "title": "Scarf", "color": "Red", "size": "M", "img": "a.png"}],
		"customerInfo": {"name": "Ana", "email": "ana@example.com", "mobile": "0771234567"},
		"deliveryInfo": {"address": "1 Main St", "city": "Colombo", "postalCode": "10100"},
		"paymentMethod": "Cash"
	}`), &in))
	return in
}

func TestRunAgentDisabledWithoutKey(t *testing.T) {
	_, err := RunAgent(context.Background(), config.AssistantConfig{}, nil, "how many coats?")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSystemPromptCarriesDate(t *testing.T) {
	p := systemPrompt(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, p, "Today is 2026-03-04")
	assert.Contains(t, p, "check_inventory")
}
