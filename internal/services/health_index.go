package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/scoring"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// HealthLookbackDays is the trailing window a Health Index calculation reads.
const HealthLookbackDays = 7

// HealthIndexCalculator scores every active health metric that has data in
// the lookback window and combines them into one weighted index. Calculate
// is pure with respect to storage; SaveSnapshot is the only write.
type HealthIndexCalculator interface {
	Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.HealthIndexResult, error)
	SaveSnapshot(ctx context.Context, tx *gorm.DB, result *types.HealthIndexResult, userID uuid.UUID) (*types.HealthIndexSnapshot, error)
}

type healthIndexCalculator struct {
	defs        repos.MetricDefinitionRepo
	aggregation MetricAggregationService
	snapshots   repos.HealthIndexSnapshotRepo
	log         *logger.Logger
}

func NewHealthIndexCalculator(
	defs repos.MetricDefinitionRepo,
	aggregation MetricAggregationService,
	snapshots repos.HealthIndexSnapshotRepo,
	baseLog *logger.Logger,
) HealthIndexCalculator {
	return &healthIndexCalculator{
		defs:        defs,
		aggregation: aggregation,
		snapshots:   snapshots,
		log:         baseLog.With("service", "HealthIndexCalculator"),
	}
}

func (s *healthIndexCalculator) Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.HealthIndexResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}

	evaluationDate := time.Now().UTC()
	if asOfDate != nil {
		evaluationDate = *asOfDate
	}
	startDate := evaluationDate.AddDate(0, 0, -HealthLookbackDays)

	s.log.Info("Calculating Health Index",
		"user_id", userID,
		"as_of", evaluationDate,
		"lookback_days", HealthLookbackDays,
	)

	healthMetrics, err := s.defs.GetActiveByDimension(ctx, nil, "health_recovery")
	if err != nil {
		return nil, fmt.Errorf("load health metric definitions: %w", err)
	}
	if len(healthMetrics) == 0 {
		s.log.Warn("No health metrics configured", "user_id", userID)
		return &types.HealthIndexResult{
			Score:        0,
			Components:   []types.HealthMetricScore{},
			CalculatedAt: evaluationDate,
		}, nil
	}

	components := make([]types.HealthMetricScore, 0, len(healthMetrics))
	weighted := make([]scoring.WeightedComponent, 0, len(healthMetrics))

	for _, metric := range healthMetrics {
		value, err := s.aggregation.AggregateMetric(ctx, metric.Code, userID, startDate, evaluationDate)
		if err != nil {
			return nil, fmt.Errorf("aggregate metric %s: %w", metric.Code, err)
		}
		if value == nil {
			s.log.Debug("No data for metric, skipping", "metric_code", metric.Code)
			continue
		}

		score := scoreMetric(metric, *value)

		s.log.Debug("Scored metric",
			"metric_code", metric.Code,
			"actual", *value,
			"score", score,
			"weight", metric.Weight,
		)

		components = append(components, types.HealthMetricScore{
			MetricCode:  metric.Code,
			ActualValue: *value,
			Score:       score,
			Weight:      metric.Weight,
			TargetValue: metric.TargetValue,
		})
		weighted = append(weighted, scoring.WeightedComponent{Score: score, Weight: metric.Weight})
	}

	score := scoring.Round2(scoring.WeightedMean(weighted))

	s.log.Info("Health Index calculated",
		"user_id", userID,
		"score", score,
		"component_count", len(components),
	)

	return &types.HealthIndexResult{
		Score:        score,
		Components:   components,
		CalculatedAt: evaluationDate,
	}, nil
}

// scoreMetric applies the normalizer matching the metric's target direction.
// Missing band parameters fall back to zero values; the normalizers saturate
// on degenerate bands rather than divide by zero.
func scoreMetric(metric *types.MetricDefinition, actual float64) float64 {
	target := 0.0
	if metric.TargetValue != nil {
		target = *metric.TargetValue
	}
	min := 0.0
	if metric.MinValue != nil {
		min = *metric.MinValue
	}
	max := 0.0
	if metric.MaxValue != nil {
		max = *metric.MaxValue
	}

	switch metric.TargetDirection {
	case types.TargetAtOrBelow:
		return scoring.ScoreAtOrBelow(actual, target, max)
	case types.TargetAtOrAbove:
		return scoring.ScoreAtOrAbove(actual, target, min)
	case types.TargetRange:
		return scoring.ScoreRange(actual, min, max, scoring.DefaultToleranceFactor)
	default:
		return 0
	}
}

func (s *healthIndexCalculator) SaveSnapshot(ctx context.Context, tx *gorm.DB, result *types.HealthIndexResult, userID uuid.UUID) (*types.HealthIndexSnapshot, error) {
	componentsJSON, err := json.Marshal(result.Components)
	if err != nil {
		return nil, fmt.Errorf("marshal health components: %w", err)
	}

	snapshot := &types.HealthIndexSnapshot{
		UserID:     userID,
		Timestamp:  result.CalculatedAt,
		Score:      result.Score,
		Components: componentsJSON,
	}
	if _, err := s.snapshots.Create(ctx, tx, snapshot); err != nil {
		return nil, fmt.Errorf("save health index snapshot: %w", err)
	}

	s.log.Info("Saved Health Index snapshot",
		"snapshot_id", snapshot.ID,
		"user_id", userID,
		"score", snapshot.Score,
	)
	return snapshot, nil
}
