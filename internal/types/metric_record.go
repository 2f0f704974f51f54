package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetricRecord is one observation. Append-only; rows are never mutated.
type MetricRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	MetricCode  string    `gorm:"not null;index;column:metric_code" json:"metric_code"`
	ValueNumber *float64  `gorm:"column:value_number" json:"value_number,omitempty"`
	ValueBool   *bool     `gorm:"column:value_bool" json:"value_bool,omitempty"`
	ValueText   *string   `gorm:"column:value_text" json:"value_text,omitempty"`
	RecordedAt  time.Time `gorm:"not null;index;column:recorded_at" json:"recorded_at"`
	Source      string    `gorm:"column:source" json:"source,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (MetricRecord) TableName() string { return "metric_record" }

func (m *MetricRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
