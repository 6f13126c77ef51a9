package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
	"retail-sense/internal/services"
)

func CreateFeedback(c *gin.Context) {
	var input services.FeedbackInput
	if !bindJSON(c, &input) {
		return
	}
	fb, err := services.CreateFeedback(c.Request.Context(), database.DB, input)
	if err != nil {
		fail(c, err, "Failed to create feedback")
		return
	}
	respond(c, http.StatusCreated, fb, "Feedback created successfully")
}

func GetAllFeedback(c *gin.Context) {
	list, err := services.ListFeedback(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Failed to fetch feedback")
		return
	}
	respond(c, http.StatusOK, list, "")
}

func GetFeedbackByUser(c *gin.Context) {
	userID, ok := uintParam(c, "userID", "user ID")
	if !ok {
		return
	}
	list, err := services.FeedbackByUser(c.Request.Context(), database.DB, userID)
	if err != nil {
		fail(c, err, "Failed to fetch feedback")
		return
	}
	respond(c, http.StatusOK, list, "")
}

func GetFeedbackByProduct(c *gin.Context) {
	list, err := services.FeedbackByProduct(c.Request.Context(), database.DB, c.Param("productID"))
	if err != nil {
		fail(c, err, "Failed to fetch feedback")
		return
	}
	respond(c, http.StatusOK, list, "")
}

func UpdateFeedback(c *gin.Context) {
	var input services.FeedbackInput
	if !bindJSON(c, &input) {
		return
	}
	fb, err := services.UpdateFeedback(c.Request.Context(), database.DB, c.Param("id"), input)
	if err != nil {
		fail(c, err, "Feedback not found")
		return
	}
	respond(c, http.StatusOK, fb, "Feedback updated successfully")
}

func DeleteFeedback(c *gin.Context) {
	if err := services.DeleteFeedback(c.Request.Context(), database.DB, c.Param("id")); err != nil {
		fail(c, err, "Feedback not found")
		return
	}
	respond(c, http.StatusOK, nil, "Feedback deleted successfully")
}

// GetAverageRating averages all ratings, or one product's when the route
// carries :productID.
func GetAverageRating(c *gin.Context) {
	avg, err := services.AverageRating(c.Request.Context(), database.DB, c.Param("productID"))
	if err != nil {
		fail(c, err, "No feedback found")
		return
	}
	respond(c, http.StatusOK, avg, "Average rating calculated successfully")
}
