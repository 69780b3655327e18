package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is the occupant of one rented unit. Only one live tenant may hold a
// (floor, flat) pair; soft-deleted rows release the pair.
type Tenant struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	Floor      int            `gorm:"not null;uniqueIndex:idx_tenant_floor_flat,where:deleted_at IS NULL" json:"floor"`
	Flat       string         `gorm:"size:32;not null;uniqueIndex:idx_tenant_floor_flat,where:deleted_at IS NULL" json:"flat"`
	TenantName string         `gorm:"size:128;not null" json:"tenantName"`
	Phone      string         `gorm:"size:32" json:"phone,omitempty"`
	CreatedBy  *string        `gorm:"size:36;index" json:"createdBy,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
