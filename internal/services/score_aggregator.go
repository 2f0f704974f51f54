package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/scoring"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// Pillar weights sum to 1.0. LongevityYearsAdded is reserved for a future
// pillar and is always 0 today; adding it means rebalancing these three.
const (
	WeightHealthIndex    = 0.4
	WeightAdherenceIndex = 0.3
	WeightWealthHealth   = 0.3
)

// ScoreAggregator fans out to the three pillar calculators and joins their
// results into one Life Score. A pillar failure fails the whole calculation;
// a silently-wrong composite is worse than a visible error.
type ScoreAggregator interface {
	Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.LifeOsScoreResult, error)
	// SaveSnapshot writes all four snapshot rows in one transaction.
	SaveSnapshot(ctx context.Context, userID uuid.UUID, result *types.LifeOsScoreResult, health *types.HealthIndexResult, adherence *types.AdherenceResult, wealth *types.WealthHealthResult) (*types.LifeOsScoreSnapshot, error)
	// CalculateAndSnapshot is the full round: fan-out, join, persist.
	CalculateAndSnapshot(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.LifeOsScoreResult, error)
}

type scoreAggregator struct {
	health        HealthIndexCalculator
	adherence     AdherenceCalculator
	wealth        WealthHealthCalculator
	snapshots     repos.LifeOsScoreSnapshotRepo
	db            *gorm.DB
	adherenceDays int
	log           *logger.Logger
}

func NewScoreAggregator(
	health HealthIndexCalculator,
	adherence AdherenceCalculator,
	wealth WealthHealthCalculator,
	snapshots repos.LifeOsScoreSnapshotRepo,
	db *gorm.DB,
	adherenceDays int,
	baseLog *logger.Logger,
) ScoreAggregator {
	return &scoreAggregator{
		health:        health,
		adherence:     adherence,
		wealth:        wealth,
		snapshots:     snapshots,
		db:            db,
		adherenceDays: adherenceDays,
		log:           baseLog.With("service", "ScoreAggregator"),
	}
}

func (s *scoreAggregator) Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.LifeOsScoreResult, error) {
	result, _, _, _, err := s.calculatePillars(ctx, userID, asOfDate)
	return result, err
}

func (s *scoreAggregator) calculatePillars(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.LifeOsScoreResult, *types.HealthIndexResult, *types.AdherenceResult, *types.WealthHealthResult, error) {
	if userID == uuid.Nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}

	evaluationDate := time.Now().UTC()
	if asOfDate != nil {
		evaluationDate = *asOfDate
	}

	s.log.Info("Calculating Life Score", "user_id", userID, "as_of", evaluationDate)

	var (
		healthResult    *types.HealthIndexResult
		adherenceResult *types.AdherenceResult
		wealthResult    *types.WealthHealthResult
	)

	// pillars read disjoint data and run concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		healthResult, err = s.health.Calculate(gctx, userID, &evaluationDate)
		return err
	})
	g.Go(func() error {
		var err error
		adherenceResult, err = s.adherence.Calculate(gctx, userID, &evaluationDate, s.adherenceDays)
		return err
	})
	g.Go(func() error {
		var err error
		wealthResult, err = s.wealth.Calculate(gctx, userID, &evaluationDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("pillar calculation: %w", err)
	}

	lifeScore := scoring.Round2(
		WeightHealthIndex*healthResult.Score +
			WeightAdherenceIndex*adherenceResult.Score +
			WeightWealthHealth*wealthResult.Score,
	)

	dimensionScores := make([]types.DimensionScoreEntry, 0, 3)
	dimensionScores = append(dimensionScores,
		types.DimensionScoreEntry{DimensionCode: "health_recovery", Score: healthResult.Score, Weight: WeightHealthIndex},
		types.DimensionScoreEntry{DimensionCode: "behavior", Score: adherenceResult.Score, Weight: WeightAdherenceIndex},
		types.DimensionScoreEntry{DimensionCode: "wealth", Score: wealthResult.Score, Weight: WeightWealthHealth},
	)

	result := &types.LifeOsScoreResult{
		LifeScore:           lifeScore,
		HealthIndex:         healthResult.Score,
		AdherenceIndex:      adherenceResult.Score,
		WealthHealthScore:   wealthResult.Score,
		LongevityYearsAdded: 0,
		DimensionScores:     dimensionScores,
		CalculatedAt:        evaluationDate,
	}

	s.log.Info("Life Score calculated",
		"user_id", userID,
		"life_score", lifeScore,
		"health_index", healthResult.Score,
		"adherence_index", adherenceResult.Score,
		"wealth_health_score", wealthResult.Score,
	)
	return result, healthResult, adherenceResult, wealthResult, nil
}

func (s *scoreAggregator) SaveSnapshot(ctx context.Context, userID uuid.UUID, result *types.LifeOsScoreResult, health *types.HealthIndexResult, adherence *types.AdherenceResult, wealth *types.WealthHealthResult) (*types.LifeOsScoreSnapshot, error) {
	dimensionJSON, err := json.Marshal(result.DimensionScores)
	if err != nil {
		return nil, fmt.Errorf("marshal dimension scores: %w", err)
	}

	snapshot := &types.LifeOsScoreSnapshot{
		UserID:              userID,
		Timestamp:           result.CalculatedAt,
		LifeScore:           result.LifeScore,
		HealthIndex:         result.HealthIndex,
		AdherenceIndex:      result.AdherenceIndex,
		WealthHealthScore:   result.WealthHealthScore,
		LongevityYearsAdded: result.LongevityYearsAdded,
		DimensionScores:     dimensionJSON,
	}

	// all four snapshot rows commit together or not at all
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.health.SaveSnapshot(ctx, tx, health, userID); err != nil {
			return err
		}
		if _, err := s.adherence.SaveSnapshot(ctx, tx, adherence, userID); err != nil {
			return err
		}
		if _, err := s.wealth.SaveSnapshot(ctx, tx, wealth, userID); err != nil {
			return err
		}
		if _, err := s.snapshots.Create(ctx, tx, snapshot); err != nil {
			return fmt.Errorf("save life score snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot transaction: %w", err)
	}

	s.log.Info("Saved Life Score snapshot round",
		"snapshot_id", snapshot.ID,
		"user_id", userID,
		"life_score", snapshot.LifeScore,
	)
	return snapshot, nil
}

func (s *scoreAggregator) CalculateAndSnapshot(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.LifeOsScoreResult, error) {
	result, health, adherence, wealth, err := s.calculatePillars(ctx, userID, asOfDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.SaveSnapshot(ctx, userID, result, health, adherence, wealth); err != nil {
		return nil, err
	}
	return result, nil
}
