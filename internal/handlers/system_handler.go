package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
)

// GetHealth reports liveness for load balancers.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "online"})
}

// GetSystemStatus pings the database so the back office can show whether
// the API is usable.
func GetSystemStatus(c *gin.Context) {
	status := gin.H{"api": "online", "database": "offline", "time": time.Now()}

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if sqlDB.PingContext(ctx) == nil {
				status["database"] = "online"
				status["openConnections"] = sqlDB.Stats().OpenConnections
			}
		}
	}

	code := http.StatusOK
	if status["database"] != "online" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
