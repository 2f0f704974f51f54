package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Streak is owned by a user and exactly one of TaskID or MetricCode. The
// one-owner rule is enforced in the streak service, not by the schema.
// Version backs the optimistic concurrency check on transitions.
type Streak struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User                *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TaskID              *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`
	Task                *LifeTask  `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	MetricCode          *string    `gorm:"index;column:metric_code" json:"metric_code,omitempty"`
	CurrentStreakLength int        `gorm:"not null;default:0;column:current_streak_length" json:"current_streak_length"`
	LongestStreakLength int        `gorm:"not null;default:0;column:longest_streak_length" json:"longest_streak_length"`
	ConsecutiveMisses   int        `gorm:"not null;default:0;column:consecutive_misses" json:"consecutive_misses"`
	RiskPenaltyScore    float64    `gorm:"not null;default:0;column:risk_penalty_score" json:"risk_penalty_score"`
	LastEvaluatedAt     *time.Time `gorm:"column:last_evaluated_at" json:"last_evaluated_at,omitempty"`
	IsActive            bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	Version             int64      `gorm:"not null;default:0;column:version" json:"-"`
	CreatedAt           time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"not null" json:"updated_at"`
}

func (Streak) TableName() string { return "streak" }

func (s *Streak) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
