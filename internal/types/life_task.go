package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyAdHoc     Frequency = "ad_hoc"
)

// PeriodDays returns the nominal period length in days, or 0 for ad-hoc
// tasks which never count as scheduled.
func (f Frequency) PeriodDays() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	case FrequencyQuarterly:
		return 90
	case FrequencyYearly:
		return 365
	default:
		return 0
	}
}

type TaskType string

const (
	TaskTypeHabit TaskType = "habit"
	TaskTypeTodo  TaskType = "todo"
)

type LifeTask struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title     string     `gorm:"not null;column:title" json:"title"`
	TaskType  TaskType   `gorm:"not null;default:'habit';column:task_type" json:"task_type"`
	Frequency Frequency  `gorm:"not null;default:'daily';column:frequency" json:"frequency"`
	StartDate time.Time  `gorm:"not null;column:start_date" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	IsActive  bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (LifeTask) TableName() string { return "life_task" }

func (t *LifeTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
