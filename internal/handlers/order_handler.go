package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
	"retail-sense/internal/services"
)

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- POST: /api/orders and /api/orders/add ---
func CreateOrder(c *gin.Context) {
	var input services.OrderInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := services.CreateOrder(c.Request.Context(), database.DB, input)
	if err != nil {
		fail(c, err, "Failed to create order")
		return
	}
	respond(c, http.StatusCreated, order, "Order created successfully")
}

// --- GET: /api/orders ---
func GetOrders(c *gin.Context) {
	orders, err := services.ListOrders(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Failed to fetch orders")
		return
	}
	respond(c, http.StatusOK, orders, "")
}

// --- GET: /api/orders/user/:userId ---
func GetUserOrders(c *gin.Context) {
	orders, err := services.OrdersByUser(c.Request.Context(), database.DB, c.Param("userId"))
	if err != nil {
		fail(c, err, "Failed to fetch orders")
		return
	}
	respond(c, http.StatusOK, orders, "")
}

// --- GET: /api/orders/:orderId ---
func GetOrder(c *gin.Context) {
	order, err := services.GetOrder(c.Request.Context(), database.DB, c.Param("orderId"))
	if err != nil {
		fail(c, err, "Order not found")
		return
	}
	respond(c, http.StatusOK, order, "")
}

// --- PUT: /api/orders/:orderId/status ---
func UpdateOrderStatus(c *gin.Context) {
	var input orderStatusRequest
	if !bindJSON(c, &input) {
		return
	}

	order, err := services.UpdateOrderStatus(c.Request.Context(), database.DB, c.Param("orderId"), input.Status)
	if err != nil {
		fail(c, err, "Order not found")
		return
	}
	respond(c, http.StatusOK, order, "Order status updated successfully")
}

// --- PUT: /api/orders/:orderId ---
func UpdateOrder(c *gin.Context) {
	var input services.OrderInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := services.UpdateOrder(c.Request.Context(), database.DB, c.Param("orderId"), input)
	if err != nil {
		fail(c, err, "Order not found")
		return
	}
	respond(c, http.StatusOK, order, "Order updated successfully")
}

// --- DELETE: /api/orders/:orderId ---
func DeleteOrder(c *gin.Context) {
	if err := services.DeleteOrder(c.Request.Context(), database.DB, c.Param("orderId")); err != nil {
		fail(c, err, "Order not found")
		return
	}
	respond(c, http.StatusOK, nil, "Order deleted successfully")
}
