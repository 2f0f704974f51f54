package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type MetricDefinitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, defs []*types.MetricDefinition) ([]*types.MetricDefinition, error)
	GetActive(ctx context.Context, tx *gorm.DB) ([]*types.MetricDefinition, error)
	GetActiveByDimension(ctx context.Context, tx *gorm.DB, dimensionCode string) ([]*types.MetricDefinition, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.MetricDefinition, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type metricDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMetricDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) MetricDefinitionRepo {
	return &metricDefinitionRepo{db: db, log: baseLog.With("repo", "MetricDefinitionRepo")}
}

func (r *metricDefinitionRepo) Create(ctx context.Context, tx *gorm.DB, defs []*types.MetricDefinition) ([]*types.MetricDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(defs) == 0 {
		return []*types.MetricDefinition{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *metricDefinitionRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.MetricDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MetricDefinition
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *metricDefinitionRepo) GetActiveByDimension(ctx context.Context, tx *gorm.DB, dimensionCode string) ([]*types.MetricDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MetricDefinition
	if err := transaction.WithContext(ctx).
		Joins("JOIN dimension ON dimension.id = metric_definition.dimension_id").
		Where("metric_definition.is_active = ? AND dimension.code = ?", true, dimensionCode).
		Order("metric_definition.code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *metricDefinitionRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.MetricDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var def types.MetricDefinition
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&def).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

func (r *metricDefinitionRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.MetricDefinition{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
