package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type LifeTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.LifeTask) ([]*types.LifeTask, error)
	GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.LifeTask, error)
	GetActiveHabitsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LifeTask, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LifeTask, error)
}

type lifeTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLifeTaskRepo(db *gorm.DB, baseLog *logger.Logger) LifeTaskRepo {
	return &lifeTaskRepo{db: db, log: baseLog.With("repo", "LifeTaskRepo")}
}

func (r *lifeTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.LifeTask) ([]*types.LifeTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tasks) == 0 {
		return []*types.LifeTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *lifeTaskRepo) GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.LifeTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var task types.LifeTask
	if err := transaction.WithContext(ctx).
		Where("id = ?", taskID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *lifeTaskRepo) GetActiveHabitsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LifeTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LifeTask
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND task_type = ?", userID, true, types.TaskTypeHabit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lifeTaskRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LifeTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LifeTask
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
