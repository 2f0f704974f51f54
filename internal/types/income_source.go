package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncomeSource struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	BaseAmount float64   `gorm:"not null;column:base_amount" json:"base_amount"`
	IsActive   bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (IncomeSource) TableName() string { return "income_source" }

func (i *IncomeSource) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
