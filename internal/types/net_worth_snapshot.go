package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NetWorthSnapshot is a dated net-worth reading used for growth scoring.
type NetWorthSnapshot struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SnapshotDate time.Time `gorm:"not null;index;column:snapshot_date" json:"snapshot_date"`
	NetWorth     float64   `gorm:"not null;column:net_worth" json:"net_worth"`
	TotalAssets  float64   `gorm:"not null;default:0;column:total_assets" json:"total_assets"`
	TotalDebts   float64   `gorm:"not null;default:0;column:total_debts" json:"total_debts"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (NetWorthSnapshot) TableName() string { return "net_worth_snapshot" }

func (n *NetWorthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
