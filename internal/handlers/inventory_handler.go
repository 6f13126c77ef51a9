package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
	"retail-sense/internal/services"
	"retail-sense/internal/utils"
)

// --- GET: /api/inventory?page=&limit= ---
func GetInventory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := services.ListInventory(c.Request.Context(), database.DB, page, limit)
	if err != nil {
		fail(c, err, "Failed to fetch inventory")
		return
	}
	respond(c, http.StatusOK, result, "")
}

// --- POST: /api/inventory ---
func AddInventory(c *gin.Context) {
	var input services.InventoryInput
	if !bindJSON(c, &input) {
		return
	}

	inv, err := services.CreateInventory(c.Request.Context(), database.DB, input)
	if err != nil {
		fail(c, err, "Failed to create inventory item")
		return
	}
	respond(c, http.StatusCreated, inv, "Inventory item created successfully")
}

// --- GET: /api/inventory/:id ---
// The id may be an inventory "_id", a numeric inventoryID or the "_id" of a
// retrieved item.
func GetInventoryItem(c *gin.Context) {
	found, err := services.GetInventory(c.Request.Context(), database.DB, c.Param("id"))
	if err != nil {
		fail(c, err, "Inventory item not found")
		return
	}
	if found.Retrieved != nil {
		respond(c, http.StatusOK, found.Retrieved, "Retrieved inventory item")
		return
	}
	respond(c, http.StatusOK, found.Inventory, "")
}

// --- PUT: /api/inventory/:id ---
func UpdateInventory(c *gin.Context) {
	id, ok := uintParam(c, "id", "inventory ID")
	if !ok {
		return
	}
	var input services.InventoryUpdate
	if !bindJSON(c, &input) {
		return
	}

	inv, err := services.UpdateInventory(c.Request.Context(), database.DB, id, input)
	if err != nil {
		fail(c, err, "Inventory item not found")
		return
	}
	respond(c, http.StatusOK, inv, "Inventory item updated successfully")
}

// --- DELETE: /api/inventory/:id ---
func DeleteInventory(c *gin.Context) {
	id, ok := uintParam(c, "id", "inventory ID")
	if !ok {
		return
	}
	if err := services.DeleteInventory(c.Request.Context(), database.DB, id); err != nil {
		fail(c, err, "Inventory item not found")
		return
	}
	respond(c, http.StatusOK, nil, "Inventory item deleted successfully")
}

// --- GET: /api/inventory/category/:category ---
func GetInventoryByCategory(c *gin.Context) {
	items, err := services.ListInventoryByCategory(c.Request.Context(), database.DB, c.Param("category"))
	if err != nil {
		fail(c, err, "No items found in this category")
		return
	}
	respond(c, http.StatusOK, items, "")
}

// --- GET: /api/inventory/status/low-stock ---
func GetLowStock(c *gin.Context) {
	items, err := services.ListLowStock(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Failed to fetch low stock items")
		return
	}
	respond(c, http.StatusOK, items, "")
}

// --- PUT: /api/inventory/:id/stock-status ---
func UpdateStockStatus(c *gin.Context) {
	id, ok := uintParam(c, "id", "inventory ID")
	if !ok {
		return
	}
	var input services.StockUpdate
	if !bindJSON(c, &input) {
		return
	}

	result, err := services.UpdateStockStatus(c.Request.Context(), database.DB, id, input)
	if err != nil {
		fail(c, err, "Inventory item not found")
		return
	}

	msg := "Stock updated successfully"
	if result.Retrieved != nil {
		msg = "Items retrieved successfully"
	}
	respond(c, http.StatusOK, result, msg)
}

// --- Retrieved (staged) inventory ---

type finalPriceRequest struct {
	FinalPrice *utils.FlexFloat `json:"finalPrice" binding:"required"`
}

type sendToStoreRequest struct {
	UnitPrice *utils.FlexFloat `json:"unitPrice" binding:"required"`
}

// --- GET: /api/inventory/retrieved/all ---
func GetRetrievedInventory(c *gin.Context) {
	items, err := services.ListRetrieved(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Failed to fetch retrieved inventory")
		return
	}
	respond(c, http.StatusOK, items, "")
}

// --- DELETE: /api/inventory/retrieved/:id ---
func DeleteRetrievedInventory(c *gin.Context) {
	if err := services.DeleteRetrieved(c.Request.Context(), database.DB, c.Param("id")); err != nil {
		fail(c, err, "Retrieved item not found")
		return
	}
	respond(c, http.StatusOK, nil, "Retrieved item deleted successfully")
}

// --- PUT: /api/inventory/retrieved/:id ---
func UpdateFinalPrice(c *gin.Context) {
	var input finalPriceRequest
	if !bindJSON(c, &input) {
		return
	}

	item, err := services.UpdateFinalPrice(c.Request.Context(), database.DB, c.Param("id"), *input.FinalPrice.Float64Ptr())
	if err != nil {
		fail(c, err, "Retrieved item not found")
		return
	}
	respond(c, http.StatusOK, item, "Final price updated successfully")
}

// --- POST: /api/inventory/retrieved/:id/revert ---
func RevertRetrievedInventory(c *gin.Context) {
	inv, err := services.RevertRetrieved(c.Request.Context(), database.DB, c.Param("id"))
	if err != nil {
		fail(c, err, "Retrieved item not found")
		return
	}
	respond(c, http.StatusOK, inv, "Item reverted to inventory")
}

// --- POST: /api/inventory/send-to-store/:id ---
func SendToStore(c *gin.Context) {
	var input sendToStoreRequest
	if !bindJSON(c, &input) {
		return
	}

	item, err := services.SendToStore(c.Request.Context(), database.DB, c.Param("id"), *input.UnitPrice.Float64Ptr())
	if err != nil {
		fail(c, err, "Retrieved item not found")
		return
	}
	respond(c, http.StatusOK, item, "Item sent to store successfully")
}
