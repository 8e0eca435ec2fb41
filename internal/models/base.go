package models

import (
	"time"

	"moolah/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all owner-scoped tables. Creation and
// update timestamps are server-assigned by GORM; client-supplied values are
// never bound into these fields.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model for schema auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Transaction{},
		&Budget{},
		&Goal{},
	}
}
