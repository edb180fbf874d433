package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"koyomi/internal/api/routes"
	"koyomi/internal/config"
	"koyomi/internal/models"
	"koyomi/internal/services"
	"koyomi/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Session store
	store := session.NewMemoryStore(
		time.Duration(cfg.Session.TTLSeconds)*time.Second,
		!cfg.Session.DisableTouch,
	)

	// Create default admin if the users table is empty
	authService := services.NewAuthService(db, store, cfg)
	if err := authService.CreateDefaultUser(); err != nil {
		logger.Warn("failed to create default user", "error", err)
	}

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.New()
	r.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(r, cfg, db, store, logger)

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting koyomi server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
