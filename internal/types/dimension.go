package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dimension groups metrics into life areas (health_recovery, wealth, ...).
type Dimension struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Dimension) TableName() string { return "dimension" }

func (d *Dimension) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
