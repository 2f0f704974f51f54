package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type StreakRepo interface {
	Create(ctx context.Context, tx *gorm.DB, streaks []*types.Streak) ([]*types.Streak, error)
	GetByID(ctx context.Context, tx *gorm.DB, streakID uuid.UUID) (*types.Streak, error)
	GetActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Streak, error)
	GetByUserAndTask(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Streak, error)
	GetByUserAndMetric(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metricCode string) (*types.Streak, error)
	// ApplyTransition persists new streak counters under an optimistic
	// version check. Returns ErrVersionConflict when another writer got
	// there first; callers reload and retry.
	ApplyTransition(ctx context.Context, tx *gorm.DB, streak *types.Streak, evaluatedAt time.Time) error
}

type streakRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStreakRepo(db *gorm.DB, baseLog *logger.Logger) StreakRepo {
	return &streakRepo{db: db, log: baseLog.With("repo", "StreakRepo")}
}

func (r *streakRepo) Create(ctx context.Context, tx *gorm.DB, streaks []*types.Streak) ([]*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(streaks) == 0 {
		return []*types.Streak{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&streaks).Error; err != nil {
		return nil, err
	}
	return streaks, nil
}

func (r *streakRepo) GetByID(ctx context.Context, tx *gorm.DB, streakID uuid.UUID) (*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var streak types.Streak
	if err := transaction.WithContext(ctx).
		Where("id = ?", streakID).
		First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &streak, nil
}

func (r *streakRepo) GetActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Streak
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *streakRepo) GetByUserAndTask(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var streak types.Streak
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &streak, nil
}

func (r *streakRepo) GetByUserAndMetric(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metricCode string) (*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var streak types.Streak
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND metric_code = ?", userID, metricCode).
		First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &streak, nil
}

func (r *streakRepo) ApplyTransition(ctx context.Context, tx *gorm.DB, streak *types.Streak, evaluatedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Streak{}).
		Where("id = ? AND version = ?", streak.ID, streak.Version).
		Updates(map[string]interface{}{
			"current_streak_length": streak.CurrentStreakLength,
			"longest_streak_length": streak.LongestStreakLength,
			"consecutive_misses":    streak.ConsecutiveMisses,
			"risk_penalty_score":    streak.RiskPenaltyScore,
			"last_evaluated_at":     evaluatedAt,
			"version":               streak.Version + 1,
			"updated_at":            time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrVersionConflict
	}
	streak.Version++
	streak.LastEvaluatedAt = &evaluatedAt
	return nil
}
