package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountType string

const (
	AccountTypeBank       AccountType = "bank"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeProperty   AccountType = "property"
	AccountTypeCrypto     AccountType = "crypto"
	AccountTypeRetirement AccountType = "retirement"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeCreditCard AccountType = "credit_card"
)

type Account struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name           string      `gorm:"not null;column:name" json:"name"`
	AccountType    AccountType `gorm:"not null;column:account_type" json:"account_type"`
	IsLiability    bool        `gorm:"not null;default:false;column:is_liability" json:"is_liability"`
	CurrentBalance float64     `gorm:"not null;default:0;column:current_balance" json:"current_balance"`
	Currency       string      `gorm:"not null;default:'USD';column:currency" json:"currency"`
	IsActive       bool        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
