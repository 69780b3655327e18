package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleAdmin = "admin"

// User is an admin account. Users are referenced by tenants (createdBy) and
// collections (collectedBy) and are never deleted.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:128;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"` // stored lowercase
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:admin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleAdmin
	}
	return nil
}
