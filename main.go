package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/config"
	"github.com/yeremiapane/attendance-portal/database"
	"github.com/yeremiapane/attendance-portal/router"
	"github.com/yeremiapane/attendance-portal/services"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/gorm"
)

const defaultJWTSecret = "change-me-in-production"

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	switch cfg.GinMode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	if cfg.JWTSecret == defaultJWTSecret {
		utils.InfoLogger.Warn("JWT_SECRET is the built-in default, set it before deploying")
	}

	db, err := database.Open(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
	if err := seedAdmin(context.Background(), db, cfg, tokens); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	r := router.SetupRouter(db, cfg, tokens)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// seedAdmin creates the ADMIN_EMAIL account on first start.
// Admins can only be created this way.
func seedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, tokens services.TokenGenerator) error {
	if !cfg.BootstrapAdmin() {
		utils.InfoLogger.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	created, err := services.NewAuthService(db, tokens).EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		utils.InfoLogger.WithField("email", cfg.AdminEmail).Info("Admin account created")
	}
	return nil
}
