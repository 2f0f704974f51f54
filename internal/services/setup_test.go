package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache DSN so every pooled connection sees the same
	// in-memory database; a plain ":memory:" gives each connection its own.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&types.User{},
		&types.Dimension{},
		&types.MetricDefinition{},
		&types.MetricRecord{},
		&types.LifeTask{},
		&types.TaskCompletion{},
		&types.Streak{},
		&types.Account{},
		&types.Transaction{},
		&types.IncomeSource{},
		&types.NetWorthSnapshot{},
		&types.HealthIndexSnapshot{},
		&types.AdherenceSnapshot{},
		&types.WealthHealthSnapshot{},
		&types.LifeOsScoreSnapshot{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

func createTestUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createHealthDimension(t *testing.T, db *gorm.DB) *types.Dimension {
	t.Helper()
	dim := &types.Dimension{Code: "health_recovery", Name: "Health & Recovery"}
	if err := db.Create(dim).Error; err != nil {
		t.Fatalf("create dimension: %v", err)
	}
	return dim
}

func ptr[T any](v T) *T { return &v }

func testCtx() context.Context { return context.Background() }

func daysAgo(from time.Time, days int) time.Time {
	return from.AddDate(0, 0, -days)
}
