package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"retail-sense/internal/auth"
	"retail-sense/internal/config"
	"retail-sense/internal/database"
	"retail-sense/internal/handlers"
	applogger "retail-sense/internal/logger"
	"retail-sense/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := config.Load()

	logger, err := applogger.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	gormLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLevel = gormlogger.Info
	}
	if _, err := database.Connect(cfg.Database, logger, gormLevel); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	auth.Configure(cfg.JWT)

	for _, dir := range []string{"inventory", "promotions"} {
		if err := os.MkdirAll(filepath.Join(cfg.Server.UploadsDir, dir), 0o755); err != nil {
			logger.Fatal("failed to create uploads directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(r, cfg)

	if cfg.Server.AllowAdminSignup {
		logger.Warn("admin signup is OPEN, disable ALLOW_ADMIN_SIGNUP in production")
	}
	if cfg.Assistant.APIKey == "" {
		logger.Info("GEMINI_API_KEY not set, assistant disabled")
	}

	logger.Info("server starting", zap.String("base_url", cfg.Server.BaseURL), zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
