package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// Score snapshot repos are append-only: create and list, never update.

type HealthIndexSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshot *types.HealthIndexSnapshot) (*types.HealthIndexSnapshot, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.HealthIndexSnapshot, error)
}

type healthIndexSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHealthIndexSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) HealthIndexSnapshotRepo {
	return &healthIndexSnapshotRepo{db: db, log: baseLog.With("repo", "HealthIndexSnapshotRepo")}
}

func (r *healthIndexSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshot *types.HealthIndexSnapshot) (*types.HealthIndexSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *healthIndexSnapshotRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.HealthIndexSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.HealthIndexSnapshot
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type AdherenceSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshot *types.AdherenceSnapshot) (*types.AdherenceSnapshot, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AdherenceSnapshot, error)
}

type adherenceSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdherenceSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) AdherenceSnapshotRepo {
	return &adherenceSnapshotRepo{db: db, log: baseLog.With("repo", "AdherenceSnapshotRepo")}
}

func (r *adherenceSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshot *types.AdherenceSnapshot) (*types.AdherenceSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *adherenceSnapshotRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AdherenceSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AdherenceSnapshot
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type WealthHealthSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshot *types.WealthHealthSnapshot) (*types.WealthHealthSnapshot, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WealthHealthSnapshot, error)
}

type wealthHealthSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWealthHealthSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) WealthHealthSnapshotRepo {
	return &wealthHealthSnapshotRepo{db: db, log: baseLog.With("repo", "WealthHealthSnapshotRepo")}
}

func (r *wealthHealthSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshot *types.WealthHealthSnapshot) (*types.WealthHealthSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *wealthHealthSnapshotRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WealthHealthSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.WealthHealthSnapshot
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type LifeOsScoreSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshot *types.LifeOsScoreSnapshot) (*types.LifeOsScoreSnapshot, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.LifeOsScoreSnapshot, error)
}

type lifeOsScoreSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLifeOsScoreSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) LifeOsScoreSnapshotRepo {
	return &lifeOsScoreSnapshotRepo{db: db, log: baseLog.With("repo", "LifeOsScoreSnapshotRepo")}
}

func (r *lifeOsScoreSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshot *types.LifeOsScoreSnapshot) (*types.LifeOsScoreSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *lifeOsScoreSnapshotRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.LifeOsScoreSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LifeOsScoreSnapshot
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
