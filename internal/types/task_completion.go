package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	Task        *LifeTask `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	CompletedAt time.Time `gorm:"not null;index;column:completed_at" json:"completed_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (TaskCompletion) TableName() string { return "task_completion" }

func (c *TaskCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
