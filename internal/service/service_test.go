package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Re1354/building-management-system/internal/config"
	"github.com/Re1354/building-management-system/internal/database"
	"github.com/Re1354/building-management-system/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

// setupTestDB opens a fresh migrated SQLite file for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newServices(t *testing.T) (*gorm.DB, *TenantService, *CollectionService) {
	t.Helper()
	db := setupTestDB(t)
	tenants := NewTenantService(db)
	collections := NewCollectionService(db, tenants)
	collections.now = func() time.Time { return fixedNow }
	return db, tenants, collections
}

func createAdmin(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createTenant(t *testing.T, s *TenantService, floor int, flat, name, by string) *models.Tenant {
	t.Helper()
	tn, err := s.Create(context.Background(), CreateTenantInput{Floor: &floor, Flat: flat, TenantName: name}, by)
	require.NoError(t, err)
	return tn
}

func ptr[T any](v T) *T { return &v }
