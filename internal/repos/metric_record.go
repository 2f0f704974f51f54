package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type MetricRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.MetricRecord) ([]*types.MetricRecord, error)
	GetNumericInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metricCode string, start, end time.Time) ([]*types.MetricRecord, error)
	GetByUserAndCode(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metricCode string, limit int) ([]*types.MetricRecord, error)
}

type metricRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMetricRecordRepo(db *gorm.DB, baseLog *logger.Logger) MetricRecordRepo {
	return &metricRecordRepo{db: db, log: baseLog.With("repo", "MetricRecordRepo")}
}

func (r *metricRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.MetricRecord) ([]*types.MetricRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return []*types.MetricRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetNumericInWindow returns records carrying a numeric value, oldest first.
func (r *metricRecordRepo) GetNumericInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metricCode string, start, end time.Time) ([]*types.MetricRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MetricRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND metric_code = ? AND recorded_at >= ? AND recorded_at <= ? AND value_number IS NOT NULL",
			userID, metricCode, start, end).
		Order("recorded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *metricRecordRepo) GetByUserAndCode(ctx context.Context, tx *gorm.DB, userID uuid.UUID, metricCode string, limit int) ([]*types.MetricRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MetricRecord
	q := transaction.WithContext(ctx).
		Where("user_id = ? AND metric_code = ?", userID, metricCode).
		Order("recorded_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
