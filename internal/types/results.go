package types

import "time"

// Calculation results are immutable once returned. Scores and sub-scores are
// always in [0,100]; breakdown lists keep insertion order for audit display.

type HealthMetricScore struct {
	MetricCode  string   `json:"metric_code"`
	ActualValue float64  `json:"actual_value"`
	Score       float64  `json:"score"`
	Weight      float64  `json:"weight"`
	TargetValue *float64 `json:"target_value,omitempty"`
}

type HealthIndexResult struct {
	Score        float64             `json:"score"`
	Components   []HealthMetricScore `json:"components"`
	CalculatedAt time.Time           `json:"calculated_at"`
}

type AdherenceResult struct {
	Score          float64   `json:"score"`
	RawAdherence   float64   `json:"raw_adherence"`
	PenaltyFactor  float64   `json:"penalty_factor"`
	TimeWindowDays int       `json:"time_window_days"`
	TasksScheduled int       `json:"tasks_scheduled"`
	TasksCompleted int       `json:"tasks_completed"`
	CalculatedAt   time.Time `json:"calculated_at"`
}

type WealthComponent struct {
	ComponentCode string  `json:"component_code"`
	ActualValue   float64 `json:"actual_value"`
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
}

type WealthHealthResult struct {
	Score        float64           `json:"score"`
	Components   []WealthComponent `json:"components"`
	CalculatedAt time.Time         `json:"calculated_at"`
}

type DimensionScoreEntry struct {
	DimensionCode string  `json:"dimension_code"`
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
}

type LifeOsScoreResult struct {
	LifeScore           float64               `json:"life_score"`
	HealthIndex         float64               `json:"health_index"`
	AdherenceIndex      float64               `json:"adherence_index"`
	WealthHealthScore   float64               `json:"wealth_health_score"`
	LongevityYearsAdded float64               `json:"longevity_years_added"`
	DimensionScores     []DimensionScoreEntry `json:"dimension_scores"`
	CalculatedAt        time.Time             `json:"calculated_at"`
}
