package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/services"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// ScoreRecomputeWorker periodically recomputes every user's Life Score and
// persists a snapshot round. One user failing does not stop the sweep.
type ScoreRecomputeWorker struct {
	users      repos.UserRepo
	aggregator services.ScoreAggregator
	interval   time.Duration
	log        *logger.Logger
}

func NewScoreRecomputeWorker(users repos.UserRepo, aggregator services.ScoreAggregator, interval time.Duration, baseLog *logger.Logger) *ScoreRecomputeWorker {
	return &ScoreRecomputeWorker{
		users:      users,
		aggregator: aggregator,
		interval:   interval,
		log:        baseLog.With("component", "ScoreRecomputeWorker"),
	}
}

func (w *ScoreRecomputeWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.sweep(ctx)
			}
		}
	}()
}

func (w *ScoreRecomputeWorker) sweep(ctx context.Context) {
	ids, err := w.users.ListIDs(ctx, nil)
	if err != nil {
		w.log.Warn("List users failed", "error", err)
		return
	}
	w.log.Info("Recomputing scores", "user_count", len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.aggregator.CalculateAndSnapshot(ctx, id, nil); err != nil {
			w.log.Warn("Score recompute failed for user", "user_id", id, "error", err)
		}
	}
}

// StreakEvaluationWorker runs once per day and records a miss for every
// active daily habit that got no completion the previous day. Misses for
// longer frequencies surface when their period elapses without completions,
// so only daily habits are evaluated here.
type StreakEvaluationWorker struct {
	users         repos.UserRepo
	tasks         repos.LifeTaskRepo
	completions   repos.TaskCompletionRepo
	streakService services.StreakService
	interval      time.Duration
	log           *logger.Logger
}

func NewStreakEvaluationWorker(
	users repos.UserRepo,
	tasks repos.LifeTaskRepo,
	completions repos.TaskCompletionRepo,
	streakService services.StreakService,
	interval time.Duration,
	baseLog *logger.Logger,
) *StreakEvaluationWorker {
	return &StreakEvaluationWorker{
		users:         users,
		tasks:         tasks,
		completions:   completions,
		streakService: streakService,
		interval:      interval,
		log:           baseLog.With("component", "StreakEvaluationWorker"),
	}
}

func (w *StreakEvaluationWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.sweep(ctx)
			}
		}
	}()
}

func (w *StreakEvaluationWorker) sweep(ctx context.Context) {
	ids, err := w.users.ListIDs(ctx, nil)
	if err != nil {
		w.log.Warn("List users failed", "error", err)
		return
	}
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		w.evaluateUser(ctx, id, yesterday)
	}
}

func (w *StreakEvaluationWorker) evaluateUser(ctx context.Context, userID uuid.UUID, day time.Time) {
	habits, err := w.tasks.GetActiveHabitsByUser(ctx, nil, userID)
	if err != nil {
		w.log.Warn("Load habits failed", "user_id", userID, "error", err)
		return
	}
	for _, task := range habits {
		if task.Frequency != types.FrequencyDaily {
			continue
		}
		if task.StartDate.After(day) {
			continue
		}
		if task.EndDate != nil && task.EndDate.Before(day) {
			continue
		}
		count, err := w.completions.CountByTaskOnDay(ctx, nil, task.ID, day)
		if err != nil {
			w.log.Warn("Count completions failed", "task_id", task.ID, "error", err)
			continue
		}
		if count > 0 {
			// completion flow already recorded the success
			continue
		}
		streak, err := w.streakService.EnsureStreak(ctx, userID, &task.ID, nil)
		if err != nil {
			w.log.Warn("Ensure streak failed", "task_id", task.ID, "error", err)
			continue
		}
		if streak.LastEvaluatedAt != nil && !streak.LastEvaluatedAt.Before(day) {
			continue
		}
		if _, err := w.streakService.RecordOutcome(ctx, streak.ID, false, day); err != nil {
			w.log.Warn("Record miss failed", "streak_id", streak.ID, "error", err)
		}
	}
}
