package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/scoring"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// transitionRetries bounds optimistic-lock retries when two occurrences for
// the same streak are evaluated concurrently.
const transitionRetries = 3

// StreakService owns streak lifecycle and applies evaluated occurrences
// through the pure transition functions in the scoring package.
type StreakService interface {
	EnsureStreak(ctx context.Context, userID uuid.UUID, taskID *uuid.UUID, metricCode *string) (*types.Streak, error)
	RecordOutcome(ctx context.Context, streakID uuid.UUID, success bool, evaluatedAt time.Time) (*types.Streak, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*types.Streak, error)
}

type streakService struct {
	streaks repos.StreakRepo
	tasks   repos.LifeTaskRepo
	log     *logger.Logger
}

func NewStreakService(streaks repos.StreakRepo, tasks repos.LifeTaskRepo, baseLog *logger.Logger) StreakService {
	return &streakService{
		streaks: streaks,
		tasks:   tasks,
		log:     baseLog.With("service", "StreakService"),
	}
}

// EnsureStreak returns the existing streak for the owner or creates one.
// A streak belongs to exactly one of taskID or metricCode, never both and
// never neither.
func (s *streakService) EnsureStreak(ctx context.Context, userID uuid.UUID, taskID *uuid.UUID, metricCode *string) (*types.Streak, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}
	hasTask := taskID != nil && *taskID != uuid.Nil
	hasMetric := metricCode != nil && *metricCode != ""
	if hasTask == hasMetric {
		return nil, fmt.Errorf("%w: streak requires exactly one of task id or metric code", pkgerrors.ErrInvalidArgument)
	}

	if hasTask {
		task, err := s.tasks.GetByID(ctx, nil, *taskID)
		if err != nil {
			return nil, fmt.Errorf("load task %s: %w", *taskID, err)
		}
		if task.UserID != userID {
			return nil, fmt.Errorf("%w: task does not belong to user", pkgerrors.ErrUnauthorized)
		}
		existing, err := s.streaks.GetByUserAndTask(ctx, nil, userID, *taskID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, fmt.Errorf("load streak for task %s: %w", *taskID, err)
		}
	} else {
		existing, err := s.streaks.GetByUserAndMetric(ctx, nil, userID, *metricCode)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, fmt.Errorf("load streak for metric %s: %w", *metricCode, err)
		}
	}

	streak := &types.Streak{
		UserID:     userID,
		TaskID:     taskID,
		MetricCode: metricCode,
		IsActive:   true,
	}
	created, err := s.streaks.Create(ctx, nil, []*types.Streak{streak})
	if err != nil {
		return nil, fmt.Errorf("create streak: %w", err)
	}

	s.log.Info("Created streak",
		"streak_id", created[0].ID,
		"user_id", userID,
		"has_task", hasTask,
	)
	return created[0], nil
}

// RecordOutcome applies one evaluated occurrence. The new counters come from
// the pure transition; persistence runs under an optimistic version check and
// reloads on conflict.
func (s *streakService) RecordOutcome(ctx context.Context, streakID uuid.UUID, success bool, evaluatedAt time.Time) (*types.Streak, error) {
	if streakID == uuid.Nil {
		return nil, fmt.Errorf("%w: streak id is required", pkgerrors.ErrInvalidArgument)
	}

	for attempt := 0; attempt <= transitionRetries; attempt++ {
		streak, err := s.streaks.GetByID(ctx, nil, streakID)
		if err != nil {
			return nil, fmt.Errorf("load streak %s: %w", streakID, err)
		}
		if !streak.IsActive {
			return nil, fmt.Errorf("%w: streak is not active", pkgerrors.ErrInvalidArgument)
		}

		next := scoring.EvaluateStreakStatus(scoring.StreakState{
			Current:           streak.CurrentStreakLength,
			Longest:           streak.LongestStreakLength,
			ConsecutiveMisses: streak.ConsecutiveMisses,
			Penalty:           streak.RiskPenaltyScore,
		}, success)

		streak.CurrentStreakLength = next.Current
		streak.LongestStreakLength = next.Longest
		streak.ConsecutiveMisses = next.ConsecutiveMisses
		streak.RiskPenaltyScore = next.Penalty

		err = s.streaks.ApplyTransition(ctx, nil, streak, evaluatedAt)
		if err == nil {
			s.log.Info("Applied streak transition",
				"streak_id", streakID,
				"success", success,
				"current", streak.CurrentStreakLength,
				"penalty", streak.RiskPenaltyScore,
			)
			return streak, nil
		}
		if !errors.Is(err, pkgerrors.ErrVersionConflict) {
			return nil, fmt.Errorf("apply streak transition %s: %w", streakID, err)
		}
		s.log.Warn("Streak version conflict, retrying",
			"streak_id", streakID,
			"attempt", attempt+1,
		)
	}
	return nil, fmt.Errorf("apply streak transition %s: %w", streakID, pkgerrors.ErrVersionConflict)
}

func (s *streakService) ListActive(ctx context.Context, userID uuid.UUID) ([]*types.Streak, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}
	streaks, err := s.streaks.GetActiveByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load active streaks: %w", err)
	}
	return streaks, nil
}
