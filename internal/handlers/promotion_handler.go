package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
	"retail-sense/internal/services"
)

// --- POST: /api/promotions ---
func CreatePromotion(c *gin.Context) {
	var input services.PromotionInput
	if !bindJSON(c, &input) {
		return
	}

	promo, err := services.CreatePromotion(c.Request.Context(), database.DB, input)
	if err != nil {
		fail(c, err, "Error creating promotion")
		return
	}
	respond(c, http.StatusCreated, promo, "Promotion created successfully")
}

// --- GET: /api/promotions ---
func GetPromotions(c *gin.Context) {
	promos, err := services.ListPromotions(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Error retrieving promotions")
		return
	}
	respond(c, http.StatusOK, promos, "Promotions retrieved successfully")
}

// --- GET: /api/promotions/:id ---
func GetPromotion(c *gin.Context) {
	id, ok := uintParam(c, "id", "promotion ID")
	if !ok {
		return
	}
	promo, err := services.GetPromotion(c.Request.Context(), database.DB, id)
	if err != nil {
		fail(c, err, "Promotion not found")
		return
	}
	respond(c, http.StatusOK, promo, "Promotion retrieved successfully")
}

// --- PUT: /api/promotions/:id ---
func UpdatePromotion(c *gin.Context) {
	id, ok := uintParam(c, "id", "promotion ID")
	if !ok {
		return
	}
	var input services.PromotionInput
	if !bindJSON(c, &input) {
		return
	}

	promo, err := services.UpdatePromotion(c.Request.Context(), database.DB, id, input)
	if err != nil {
		fail(c, err, "Promotion not found")
		return
	}
	respond(c, http.StatusOK, promo, "Promotion updated successfully")
}

// --- DELETE: /api/promotions/:id ---
func DeletePromotion(c *gin.Context) {
	id, ok := uintParam(c, "id", "promotion ID")
	if !ok {
		return
	}
	promo, err := services.DeletePromotion(c.Request.Context(), database.DB, id)
	if err != nil {
		fail(c, err, "Promotion not found")
		return
	}
	respond(c, http.StatusOK, promo, "Promotion deleted successfully")
}

// --- GET: /api/promotions/check/:promotionID/:productID ---
func CheckPromotionDiscount(c *gin.Context) {
	id, ok := uintParam(c, "promotionID", "promotion ID")
	if !ok {
		return
	}
	check, err := services.CheckDiscount(c.Request.Context(), database.DB, id, c.Param("productID"))
	if err != nil {
		fail(c, err, "Error checking promotion discount")
		return
	}
	respond(c, http.StatusOK, check, "Discount calculated successfully")
}

// --- POST: /api/promotions/apply/:promotionID/:productID ---
func ApplyPromotion(c *gin.Context) {
	id, ok := uintParam(c, "promotionID", "promotion ID")
	if !ok {
		return
	}
	applied, err := services.ApplyPromotion(c.Request.Context(), database.DB, id, c.Param("productID"))
	if err != nil {
		fail(c, err, "Error applying promotion")
		return
	}
	respond(c, http.StatusOK, applied, "Promotion applied successfully")
}
