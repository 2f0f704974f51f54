package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type TransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, transactions []*types.Transaction) ([]*types.Transaction, error)
	SumByCategoryInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category types.TransactionCategory, start, end time.Time) (float64, error)
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	return &transactionRepo{db: db, log: baseLog.With("repo", "TransactionRepo")}
}

func (r *transactionRepo) Create(ctx context.Context, tx *gorm.DB, transactions []*types.Transaction) ([]*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(transactions) == 0 {
		return []*types.Transaction{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepo) SumByCategoryInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category types.TransactionCategory, start, end time.Time) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total float64
	if err := transaction.WithContext(ctx).
		Model(&types.Transaction{}).
		Where("user_id = ? AND category = ? AND recorded_at >= ? AND recorded_at <= ?", userID, category, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
