package handlers

import (
	"github.com/gin-gonic/gin"

	"retail-sense/internal/config"
	"retail-sense/internal/middleware"
	"retail-sense/internal/models"
)

// RegisterRoutes mounts every API route on r. Handlers read the database from
// database.DB, which must be set before the first request.
func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	useJSONFieldNames()
	allowAdminSignup = cfg.Server.AllowAdminSignup
	assistantConfig = cfg.Assistant

	r.GET("/health", GetHealth)
	r.Static("/uploads", cfg.Server.UploadsDir)

	api := r.Group("/api")
	api.GET("/system/status", GetSystemStatus)

	inventory := api.Group("/inventory")
	{
		inventory.GET("", GetInventory)
		inventory.POST("", AddInventory)
		inventory.GET("/category/:category", GetInventoryByCategory)
		inventory.GET("/status/low-stock", GetLowStock)
		inventory.GET("/retrieved/all", GetRetrievedInventory)
		inventory.PUT("/retrieved/:id", UpdateFinalPrice)
		inventory.DELETE("/retrieved/:id", DeleteRetrievedInventory)
		inventory.POST("/retrieved/:id/revert", RevertRetrievedInventory)
		inventory.POST("/send-to-store/:id", SendToStore)
		inventory.GET("/:id", GetInventoryItem)
		inventory.PUT("/:id", UpdateInventory)
		inventory.DELETE("/:id", DeleteInventory)
		inventory.PUT("/:id/stock-status", UpdateStockStatus)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", CreateOrder)
		orders.POST("/add", CreateOrder)
		orders.GET("", GetOrders)
		orders.GET("/summary", GetOrderSummary)
		orders.GET("/user/:userId", GetUserOrders)
		orders.GET("/:orderId", GetOrder)
		orders.PUT("/:orderId/status", UpdateOrderStatus)
		orders.PUT("/:orderId", UpdateOrder)
		orders.DELETE("/:orderId", DeleteOrder)
	}

	promotions := api.Group("/promotions")
	{
		promotions.POST("", CreatePromotion)
		promotions.GET("", GetPromotions)
		promotions.GET("/check/:promotionID/:productID", CheckPromotionDiscount)
		promotions.POST("/apply/:promotionID/:productID", ApplyPromotion)
		promotions.GET("/:id", GetPromotion)
		promotions.PUT("/:id", UpdatePromotion)
		promotions.DELETE("/:id", DeletePromotion)
	}

	users := api.Group("/users")
	{
		users.POST("", CreateUser)
		users.GET("", GetUsers)
		users.GET("/:id", GetUser)
		users.PUT("/:id", UpdateUser)
		users.DELETE("/:id", DeleteUser)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", SignUp)
		authRoutes.POST("/signin", SignIn)
	}

	feedback := api.Group("/feedback")
	{
		feedback.POST("", CreateFeedback)
		feedback.GET("", GetAllFeedback)
		feedback.GET("/average", GetAverageRating)
		feedback.GET("/user/:userID", GetFeedbackByUser)
		feedback.GET("/product/:productID", GetFeedbackByProduct)
		feedback.GET("/product/:productID/average", GetAverageRating)
		feedback.PUT("/:id", UpdateFeedback)
		feedback.DELETE("/:id", DeleteFeedback)
	}

	api.GET("/reports/valuation", GetStockValuation)

	// signed-in admins only
	assistant := api.Group("/assistant")
	assistant.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		assistant.POST("/ask", AskAI)
	}
}
