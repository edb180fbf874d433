package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"koyomi/internal/config"
	"koyomi/internal/models"
	"koyomi/internal/session"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: fmt.Sprintf("%s/koyomi_test_%d.db", os.TempDir(), time.Now().UnixNano()),
			},
		},
		Session: config.SessionConfig{
			CookieName: "koyomi_session",
			Secret:     "test-session-secret",
			TTLSeconds: 1800,
			KeyPrefix:  "sess:",
		},
		RememberMe: config.RememberMeConfig{
			CookieName: "koyomi_remember",
			Secret:     "test-remember-secret",
			TTLDays:    120,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}
}

func setupTestDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()
	cfg := testConfig(t)

	db, err := models.InitDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(cfg.Database.SQLite.Path)
	})

	return db, cfg
}

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB, *config.Config) {
	t.Helper()
	db, cfg := setupTestDB(t)
	store := session.NewMemoryStore(time.Duration(cfg.Session.TTLSeconds)*time.Second, true)
	return NewAuthService(db, store, cfg), db, cfg
}

func createTestUser(t *testing.T, db *gorm.DB, auth *AuthService, email, name, password, role string, enabled bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Enabled:      enabled,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
