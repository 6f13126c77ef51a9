package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
	"retail-sense/internal/services"
)

// --- GET: /api/orders/summary?from=YYYY-MM-DD&to=YYYY-MM-DD ---
// Both bounds are optional and inclusive.
func GetOrderSummary(c *gin.Context) {
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "from must be in YYYY-MM-DD format"})
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "to must be in YYYY-MM-DD format"})
			return
		}
		to = services.EndOfDay(t)
	}

	report, err := services.OrderSummary(c.Request.Context(), database.DB, from, to)
	if err != nil {
		fail(c, err, "Failed to calculate order summary")
		return
	}
	respond(c, http.StatusOK, report, "")
}

// --- GET: /api/reports/valuation ---
// GetStockValuation calculates the monetary value of all warehouse stock
func GetStockValuation(c *gin.Context) {
	report, err := database.GetStockValuation(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Failed to fetch inventory")
		return
	}
	respond(c, http.StatusOK, report, "")
}
