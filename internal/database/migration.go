package database

import (
	"fmt"

	"github.com/Re1354/building-management-system/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tenant{},
		&models.Collection{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
