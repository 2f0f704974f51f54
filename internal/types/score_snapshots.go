package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Score snapshots are append-only history rows. Component breakdowns are
// typed in the result structs and serialized to jsonb only here, at the
// storage boundary.

type HealthIndexSnapshot struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Timestamp  time.Time      `gorm:"not null;index;column:timestamp" json:"timestamp"`
	Score      float64        `gorm:"not null;column:score" json:"score"`
	Components datatypes.JSON `gorm:"type:jsonb;column:components" json:"components"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (HealthIndexSnapshot) TableName() string { return "health_index_snapshot" }

func (s *HealthIndexSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type AdherenceSnapshot struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Timestamp      time.Time `gorm:"not null;index;column:timestamp" json:"timestamp"`
	Score          float64   `gorm:"not null;column:score" json:"score"`
	RawAdherence   float64   `gorm:"not null;column:raw_adherence" json:"raw_adherence"`
	PenaltyFactor  float64   `gorm:"not null;column:penalty_factor" json:"penalty_factor"`
	TimeWindowDays int       `gorm:"not null;column:time_window_days" json:"time_window_days"`
	TasksScheduled int       `gorm:"not null;column:tasks_scheduled" json:"tasks_scheduled"`
	TasksCompleted int       `gorm:"not null;column:tasks_completed" json:"tasks_completed"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (AdherenceSnapshot) TableName() string { return "adherence_snapshot" }

func (s *AdherenceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type WealthHealthSnapshot struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Timestamp  time.Time      `gorm:"not null;index;column:timestamp" json:"timestamp"`
	Score      float64        `gorm:"not null;column:score" json:"score"`
	Components datatypes.JSON `gorm:"type:jsonb;column:components" json:"components"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (WealthHealthSnapshot) TableName() string { return "wealth_health_snapshot" }

func (s *WealthHealthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type LifeOsScoreSnapshot struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User                *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Timestamp           time.Time      `gorm:"not null;index;column:timestamp" json:"timestamp"`
	LifeScore           float64        `gorm:"not null;column:life_score" json:"life_score"`
	HealthIndex         float64        `gorm:"not null;column:health_index" json:"health_index"`
	AdherenceIndex      float64        `gorm:"not null;column:adherence_index" json:"adherence_index"`
	WealthHealthScore   float64        `gorm:"not null;column:wealth_health_score" json:"wealth_health_score"`
	LongevityYearsAdded float64        `gorm:"not null;default:0;column:longevity_years_added" json:"longevity_years_added"`
	DimensionScores     datatypes.JSON `gorm:"type:jsonb;column:dimension_scores" json:"dimension_scores"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
}

func (LifeOsScoreSnapshot) TableName() string { return "lifeos_score_snapshot" }

func (s *LifeOsScoreSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
