package services

import (
	"context"
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

// penaltyScale maps risk penalty scores into the 0-1 factor range.
const penaltyScale = 100.0

// AdherenceCalculator derives a behavior score from expected vs. actual
// habit completions, discounted by the user's average streak penalty.
type AdherenceCalculator interface {
	Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time, windowDays int) (*types.AdherenceResult, error)
	SaveSnapshot(ctx context.Context, tx *gorm.DB, result *types.AdherenceResult, userID uuid.UUID) (*types.AdherenceSnapshot, error)
}

type adherenceCalculator struct {
	tasks       repos.LifeTaskRepo
	completions repos.TaskCompletionRepo
	streaks     repos.StreakRepo
	snapshots   repos.AdherenceSnapshotRepo
	log         *logger.Logger
}

func NewAdherenceCalculator(
	tasks repos.LifeTaskRepo,
	completions repos.TaskCompletionRepo,
	streaks repos.StreakRepo,
	snapshots repos.AdherenceSnapshotRepo,
	baseLog *logger.Logger,
) AdherenceCalculator {
	return &adherenceCalculator{
		tasks:       tasks,
		completions: completions,
		streaks:     streaks,
		snapshots:   snapshots,
		log:         baseLog.With("service", "AdherenceCalculator"),
	}
}

func (s *adherenceCalculator) Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time, windowDays int) (*types.AdherenceResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: window days must be positive", pkgerrors.ErrInvalidArgument)
	}

	evaluationDate := time.Now().UTC()
	if asOfDate != nil {
		evaluationDate = *asOfDate
	}
	startDate := evaluationDate.AddDate(0, 0, -windowDays)

	s.log.Info("Calculating Behavioral Adherence",
		"user_id", userID,
		"as_of", evaluationDate,
		"window_days", windowDays,
	)

	tasks, err := s.tasks.GetActiveHabitsByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load habit tasks: %w", err)
	}

	var scheduled, completed int
	for _, task := range tasks {
		// skip tasks that were not live at any point in the window
		if task.EndDate != nil && task.EndDate.Before(startDate) {
			continue
		}
		if task.StartDate.After(evaluationDate) {
			continue
		}

		expected := expectedOccurrences(task.Frequency, windowDays)
		if expected == 0 {
			continue
		}
		scheduled += expected

		count, err := s.completions.CountByTaskInWindow(ctx, nil, task.ID, startDate, evaluationDate)
		if err != nil {
			return nil, fmt.Errorf("count completions for task %s: %w", task.ID, err)
		}
		// completions beyond the scheduled count never inflate the ratio
		if count > int64(expected) {
			count = int64(expected)
		}
		completed += int(count)
	}

	rawAdherence := 0.0
	if scheduled > 0 {
		rawAdherence = float64(completed) / float64(scheduled)
	}

	penaltyFactor, err := s.penaltyFactor(ctx, userID)
	if err != nil {
		return nil, err
	}

	score := scoring.Round2(rawAdherence * 100 * penaltyFactor)

	s.log.Info("Adherence calculated",
		"user_id", userID,
		"score", score,
		"raw_adherence", rawAdherence,
		"penalty_factor", penaltyFactor,
		"scheduled", scheduled,
		"completed", completed,
	)

	return &types.AdherenceResult{
		Score:          score,
		RawAdherence:   rawAdherence,
		PenaltyFactor:  penaltyFactor,
		TimeWindowDays: windowDays,
		TasksScheduled: scheduled,
		TasksCompleted: completed,
		CalculatedAt:   evaluationDate,
	}, nil
}

// expectedOccurrences counts scheduled instances of a frequency inside the
// window: at least one full period must fit, ad-hoc tasks never count.
func expectedOccurrences(frequency types.Frequency, windowDays int) int {
	period := frequency.PeriodDays()
	if period == 0 {
		return 0
	}
	if period == 1 {
		return windowDays
	}
	n := windowDays / period
	if n < 1 {
		n = 1
	}
	return n
}

func (s *adherenceCalculator) penaltyFactor(ctx context.Context, userID uuid.UUID) (float64, error) {
	streaks, err := s.streaks.GetActiveByUser(ctx, nil, userID)
	if err != nil {
		return 0, fmt.Errorf("load active streaks: %w", err)
	}
	if len(streaks) == 0 {
		return 1.0, nil
	}

	var total float64
	for _, streak := range streaks {
		total += streak.RiskPenaltyScore
	}
	avgPenalty := total / float64(len(streaks)) / penaltyScale

	// penalty can never push the factor below half
	return scoring.Clamp(1-avgPenalty, 0.5, 1.0), nil
}

func (s *adherenceCalculator) SaveSnapshot(ctx context.Context, tx *gorm.DB, result *types.AdherenceResult, userID uuid.UUID) (*types.AdherenceSnapshot, error) {
	snapshot := &types.AdherenceSnapshot{
		UserID:         userID,
		Timestamp:      result.CalculatedAt,
		Score:          result.Score,
		RawAdherence:   result.RawAdherence,
		PenaltyFactor:  result.PenaltyFactor,
		TimeWindowDays: result.TimeWindowDays,
		TasksScheduled: result.TasksScheduled,
		TasksCompleted: result.TasksCompleted,
	}
	if _, err := s.snapshots.Create(ctx, tx, snapshot); err != nil {
		return nil, fmt.Errorf("save adherence snapshot: %w", err)
	}

	s.log.Info("Saved Adherence snapshot",
		"snapshot_id", snapshot.ID,
		"user_id", userID,
		"score", snapshot.Score,
	)
	return snapshot, nil
}
