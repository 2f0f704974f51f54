package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type NetWorthSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snapshots []*types.NetWorthSnapshot) ([]*types.NetWorthSnapshot, error)
	// GetLatestTwoInWindow returns up to two snapshots in the window,
	// newest first, for growth-rate calculation.
	GetLatestTwoInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.NetWorthSnapshot, error)
}

type netWorthSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNetWorthSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) NetWorthSnapshotRepo {
	return &netWorthSnapshotRepo{db: db, log: baseLog.With("repo", "NetWorthSnapshotRepo")}
}

func (r *netWorthSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, snapshots []*types.NetWorthSnapshot) ([]*types.NetWorthSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(snapshots) == 0 {
		return []*types.NetWorthSnapshot{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *netWorthSnapshotRepo) GetLatestTwoInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*types.NetWorthSnapshot, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.NetWorthSnapshot
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND snapshot_date >= ? AND snapshot_date <= ?", userID, start, end).
		Order("snapshot_date DESC").
		Limit(2).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
