package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collection is one rent payment. Month and year are always derived from Date
// on the server; rows are never updated after insert.
// Amounts are stored in cents to keep sums exact.
type Collection struct {
	ID          string    `gorm:"primaryKey;size:36"`
	TenantID    string    `gorm:"size:36;index;not null"`
	CollectedBy string    `gorm:"size:36;index;not null"`
	AmountCent  int64     `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"`
	Month       int       `gorm:"not null;index:idx_collection_month_year,priority:1"`
	Year        int       `gorm:"not null;index:idx_collection_month_year,priority:2"`
	Note        string    `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tenant    *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT"`
	Collector *User   `gorm:"foreignKey:CollectedBy;constraint:OnDelete:RESTRICT"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
