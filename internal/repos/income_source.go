package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type IncomeSourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sources []*types.IncomeSource) ([]*types.IncomeSource, error)
	SumActiveMonthly(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error)
}

type incomeSourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIncomeSourceRepo(db *gorm.DB, baseLog *logger.Logger) IncomeSourceRepo {
	return &incomeSourceRepo{db: db, log: baseLog.With("repo", "IncomeSourceRepo")}
}

func (r *incomeSourceRepo) Create(ctx context.Context, tx *gorm.DB, sources []*types.IncomeSource) ([]*types.IncomeSource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sources) == 0 {
		return []*types.IncomeSource{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *incomeSourceRepo) SumActiveMonthly(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total float64
	if err := transaction.WithContext(ctx).
		Model(&types.IncomeSource{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Select("COALESCE(SUM(base_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
