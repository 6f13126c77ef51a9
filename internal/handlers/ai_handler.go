package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/ai"
	"retail-sense/internal/config"
	"retail-sense/internal/database"
)

type AskRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// assistantConfig is set by RegisterRoutes.
var assistantConfig config.AssistantConfig

// --- POST: /api/assistant/ask ---
func AskAI(c *gin.Context) {
	var req AskRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := ai.RunAgent(c.Request.Context(), assistantConfig, database.DB, req.Message)
	if errors.Is(err, ai.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Assistant is not configured"})
		return
	}
	if err != nil {
		fail(c, err, "Assistant failed to answer")
		return
	}

	respond(c, http.StatusOK, gin.H{"reply": reply}, "")
}
