package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetricValueType string

const (
	MetricValueNumber  MetricValueType = "number"
	MetricValueBoolean MetricValueType = "boolean"
	MetricValueText    MetricValueType = "text"
)

// AggregationType reduces the records inside a lookback window to one value.
type AggregationType string

const (
	AggregationLast    AggregationType = "last"
	AggregationSum     AggregationType = "sum"
	AggregationAverage AggregationType = "average"
	AggregationMin     AggregationType = "min"
	AggregationMax     AggregationType = "max"
	AggregationCount   AggregationType = "count"
)

// TargetDirection states whether lower, higher, or in-band values score best.
type TargetDirection string

const (
	TargetAtOrBelow TargetDirection = "at_or_below"
	TargetAtOrAbove TargetDirection = "at_or_above"
	TargetRange     TargetDirection = "range"
)

type MetricDefinition struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code            string          `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name            string          `gorm:"not null;column:name" json:"name"`
	Unit            string          `gorm:"column:unit" json:"unit,omitempty"`
	DimensionID     *uuid.UUID      `gorm:"type:uuid;index" json:"dimension_id,omitempty"`
	Dimension       *Dimension      `gorm:"constraint:OnDelete:SET NULL;foreignKey:DimensionID;references:ID" json:"dimension,omitempty"`
	ValueType       MetricValueType `gorm:"not null;default:'number';column:value_type" json:"value_type"`
	AggregationType AggregationType `gorm:"not null;default:'last';column:aggregation_type" json:"aggregation_type"`
	MinValue        *float64        `gorm:"column:min_value" json:"min_value,omitempty"`
	MaxValue        *float64        `gorm:"column:max_value" json:"max_value,omitempty"`
	TargetValue     *float64        `gorm:"column:target_value" json:"target_value,omitempty"`
	TargetDirection TargetDirection `gorm:"not null;default:'at_or_above';column:target_direction" json:"target_direction"`
	Weight          float64         `gorm:"not null;default:1;column:weight" json:"weight"`
	IsActive        bool            `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

func (MetricDefinition) TableName() string { return "metric_definition" }

func (m *MetricDefinition) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
