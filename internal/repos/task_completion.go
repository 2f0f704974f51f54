package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type TaskCompletionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, completions []*types.TaskCompletion) ([]*types.TaskCompletion, error)
	CountByTaskInWindow(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, start, end time.Time) (int64, error)
	CountByTaskOnDay(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, day time.Time) (int64, error)
}

type taskCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskCompletionRepo(db *gorm.DB, baseLog *logger.Logger) TaskCompletionRepo {
	return &taskCompletionRepo{db: db, log: baseLog.With("repo", "TaskCompletionRepo")}
}

func (r *taskCompletionRepo) Create(ctx context.Context, tx *gorm.DB, completions []*types.TaskCompletion) ([]*types.TaskCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(completions) == 0 {
		return []*types.TaskCompletion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *taskCompletionRepo) CountByTaskInWindow(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, start, end time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TaskCompletion{}).
		Where("task_id = ? AND completed_at >= ? AND completed_at < ?", taskID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskCompletionRepo) CountByTaskOnDay(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return r.CountByTaskInWindow(ctx, tx, taskID, start, start.AddDate(0, 0, 1))
}
