package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// SeedService installs the default metric catalogue on first boot. It is a
// no-op when any metric definitions already exist.
type SeedService interface {
	SeedDefaults(ctx context.Context) error
}

type seedService struct {
	db   *gorm.DB
	defs repos.MetricDefinitionRepo
	log  *logger.Logger
}

func NewSeedService(db *gorm.DB, defs repos.MetricDefinitionRepo, baseLog *logger.Logger) SeedService {
	return &seedService{
		db:   db,
		defs: defs,
		log:  baseLog.With("service", "SeedService"),
	}
}

func floatPtr(v float64) *float64 { return &v }

func (s *seedService) SeedDefaults(ctx context.Context) error {
	count, err := s.defs.CountAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("count metric definitions: %w", err)
	}
	if count > 0 {
		s.log.Debug("Metric catalogue already populated", "count", count)
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dimension := &types.Dimension{Code: "health_recovery", Name: "Health & Recovery"}
		if err := tx.Where(types.Dimension{Code: dimension.Code}).FirstOrCreate(dimension).Error; err != nil {
			return fmt.Errorf("seed dimension: %w", err)
		}

		defaults := []*types.MetricDefinition{
			{
				Code:            "resting_heart_rate",
				Name:            "Resting Heart Rate",
				Unit:            "bpm",
				DimensionID:     &dimension.ID,
				AggregationType: types.AggregationAverage,
				TargetDirection: types.TargetAtOrBelow,
				TargetValue:     floatPtr(60),
				MaxValue:        floatPtr(100),
				Weight:          0.20,
				IsActive:        true,
			},
			{
				Code:            "sleep_hours",
				Name:            "Sleep Duration",
				Unit:            "hours",
				DimensionID:     &dimension.ID,
				AggregationType: types.AggregationAverage,
				TargetDirection: types.TargetAtOrAbove,
				TargetValue:     floatPtr(8),
				MinValue:        floatPtr(4),
				Weight:          0.25,
				IsActive:        true,
			},
			{
				Code:            "hrv",
				Name:            "Heart Rate Variability",
				Unit:            "ms",
				DimensionID:     &dimension.ID,
				AggregationType: types.AggregationAverage,
				TargetDirection: types.TargetAtOrAbove,
				TargetValue:     floatPtr(70),
				MinValue:        floatPtr(20),
				Weight:          0.20,
				IsActive:        true,
			},
			{
				Code:            "body_weight",
				Name:            "Body Weight",
				Unit:            "kg",
				DimensionID:     &dimension.ID,
				AggregationType: types.AggregationLast,
				TargetDirection: types.TargetRange,
				MinValue:        floatPtr(65),
				MaxValue:        floatPtr(80),
				Weight:          0.15,
				IsActive:        true,
			},
			{
				Code:            "weekly_activity_minutes",
				Name:            "Activity Minutes",
				Unit:            "minutes",
				DimensionID:     &dimension.ID,
				AggregationType: types.AggregationSum,
				TargetDirection: types.TargetAtOrAbove,
				TargetValue:     floatPtr(150),
				MinValue:        floatPtr(0),
				Weight:          0.20,
				IsActive:        true,
			},
		}
		if _, err := s.defs.Create(ctx, tx, defaults); err != nil {
			return fmt.Errorf("seed metric definitions: %w", err)
		}

		s.log.Info("Seeded default metric catalogue", "definition_count", len(defaults))
		return nil
	})
}
