package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionCategory string

const (
	TransactionIncome   TransactionCategory = "income"
	TransactionExpense  TransactionCategory = "expense"
	TransactionTransfer TransactionCategory = "transfer"
)

type Transaction struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AccountID  *uuid.UUID          `gorm:"type:uuid;index" json:"account_id,omitempty"`
	Account    *Account            `gorm:"constraint:OnDelete:SET NULL;foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Category   TransactionCategory `gorm:"not null;index;column:category" json:"category"`
	Amount     float64             `gorm:"not null;column:amount" json:"amount"`
	Note       string              `gorm:"column:note" json:"note,omitempty"`
	RecordedAt time.Time           `gorm:"not null;index;column:recorded_at" json:"recorded_at"`
	CreatedAt  time.Time           `gorm:"not null" json:"created_at"`
}

func (Transaction) TableName() string { return "transaction" }

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
