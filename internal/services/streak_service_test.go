package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

func newStreakFixture(t *testing.T) (*gorm.DB, StreakService, repos.StreakRepo, *types.User) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	streaks := repos.NewStreakRepo(db, log)
	tasks := repos.NewLifeTaskRepo(db, log)
	svc := NewStreakService(streaks, tasks, log)

	user := createTestUser(t, db)
	return db, svc, streaks, user
}

func TestEnsureStreakOwnerRule(t *testing.T) {
	db, svc, _, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))
	metricCode := "sleep_hours"

	tests := []struct {
		name       string
		taskID     *uuid.UUID
		metricCode *string
		wantErr    bool
	}{
		{"task owner", &task.ID, nil, false},
		{"metric owner", nil, &metricCode, false},
		{"both owners rejected", &task.ID, &metricCode, true},
		{"no owner rejected", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.EnsureStreak(testCtx(), user.ID, tt.taskID, tt.metricCode)
			if tt.wantErr {
				if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
					t.Fatalf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnsureStreak: %v", err)
			}
		})
	}
}

func TestEnsureStreakIsIdempotentPerTask(t *testing.T) {
	db, svc, _, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	first, err := svc.EnsureStreak(testCtx(), user.ID, &task.ID, nil)
	if err != nil {
		t.Fatalf("first EnsureStreak: %v", err)
	}
	second, err := svc.EnsureStreak(testCtx(), user.ID, &task.ID, nil)
	if err != nil {
		t.Fatalf("second EnsureStreak: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("got two streaks for one task: %s vs %s", first.ID, second.ID)
	}
}

func TestEnsureStreakIsIdempotentPerMetric(t *testing.T) {
	_, svc, _, user := newStreakFixture(t)
	metricCode := "sleep_hours"

	first, err := svc.EnsureStreak(testCtx(), user.ID, nil, &metricCode)
	if err != nil {
		t.Fatalf("first EnsureStreak: %v", err)
	}
	second, err := svc.EnsureStreak(testCtx(), user.ID, nil, &metricCode)
	if err != nil {
		t.Fatalf("second EnsureStreak: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("got two streaks for one metric owner: %s vs %s", first.ID, second.ID)
	}

	// a different metric still gets its own streak
	otherCode := "hrv"
	other, err := svc.EnsureStreak(testCtx(), user.ID, nil, &otherCode)
	if err != nil {
		t.Fatalf("EnsureStreak other metric: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("distinct metrics share streak %s", first.ID)
	}
}

func TestEnsureStreakRejectsForeignTask(t *testing.T) {
	db, svc, _, user := newStreakFixture(t)
	other := createTestUser(t, db)
	task := createHabit(t, db, other, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	_, err := svc.EnsureStreak(testCtx(), user.ID, &task.ID, nil)
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestRecordOutcomeMissSequence(t *testing.T) {
	db, svc, _, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	streak := &types.Streak{
		UserID:              user.ID,
		TaskID:              &task.ID,
		CurrentStreakLength: 5,
		IsActive:            true,
	}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("create streak: %v", err)
	}

	now := time.Now().UTC()
	expected := []struct {
		current int
		misses  int
		penalty float64
	}{
		{0, 1, 0},
		{0, 2, 5},
		{0, 3, 20},
		{0, 4, 30},
	}
	for i, want := range expected {
		got, err := svc.RecordOutcome(testCtx(), streak.ID, false, now)
		if err != nil {
			t.Fatalf("miss %d: %v", i+1, err)
		}
		if got.CurrentStreakLength != want.current || got.ConsecutiveMisses != want.misses || got.RiskPenaltyScore != want.penalty {
			t.Fatalf("miss %d: got {current:%d misses:%d penalty:%v}, want %+v",
				i+1, got.CurrentStreakLength, got.ConsecutiveMisses, got.RiskPenaltyScore, want)
		}
	}

	// longest streak was captured before the reset
	reloaded, err := svc.ListActive(testCtx(), user.ID)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].LongestStreakLength != 5 {
		t.Fatalf("longest = %d, want 5", reloaded[0].LongestStreakLength)
	}
}

func TestRecordOutcomeSuccessDecaysPenalty(t *testing.T) {
	db, svc, _, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	streak := &types.Streak{
		UserID:            user.ID,
		TaskID:            &task.ID,
		ConsecutiveMisses: 3,
		RiskPenaltyScore:  20,
		IsActive:          true,
	}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("create streak: %v", err)
	}

	got, err := svc.RecordOutcome(testCtx(), streak.ID, true, time.Now().UTC())
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if got.CurrentStreakLength != 1 || got.ConsecutiveMisses != 0 || got.RiskPenaltyScore != 18 {
		t.Fatalf("got {current:%d misses:%d penalty:%v}, want {1 0 18}",
			got.CurrentStreakLength, got.ConsecutiveMisses, got.RiskPenaltyScore)
	}
}

func TestApplyTransitionVersionConflict(t *testing.T) {
	db, _, streakRepo, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	streak := &types.Streak{UserID: user.ID, TaskID: &task.ID, IsActive: true}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("create streak: %v", err)
	}

	now := time.Now().UTC()
	fresh, err := streakRepo.GetByID(testCtx(), nil, streak.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	stale := *fresh

	fresh.CurrentStreakLength = 1
	if err := streakRepo.ApplyTransition(testCtx(), nil, fresh, now); err != nil {
		t.Fatalf("first ApplyTransition: %v", err)
	}

	stale.CurrentStreakLength = 2
	err = streakRepo.ApplyTransition(testCtx(), nil, &stale, now)
	if !errors.Is(err, pkgerrors.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}

func TestRecordOutcomeRetriesPastConflict(t *testing.T) {
	db, svc, streakRepo, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	streak := &types.Streak{UserID: user.ID, TaskID: &task.ID, IsActive: true}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("create streak: %v", err)
	}

	// bump the version underneath; RecordOutcome reloads and still lands
	fresh, err := streakRepo.GetByID(testCtx(), nil, streak.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	fresh.CurrentStreakLength = 3
	if err := streakRepo.ApplyTransition(testCtx(), nil, fresh, time.Now().UTC()); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}

	got, err := svc.RecordOutcome(testCtx(), streak.ID, true, time.Now().UTC())
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if got.CurrentStreakLength != 4 {
		t.Fatalf("current = %d, want 4", got.CurrentStreakLength)
	}
}

func TestRecordOutcomeInactiveStreak(t *testing.T) {
	db, svc, _, user := newStreakFixture(t)
	task := createHabit(t, db, user, types.FrequencyDaily, time.Now().UTC().AddDate(0, 0, -10))

	streak := &types.Streak{UserID: user.ID, TaskID: &task.ID, IsActive: true}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("create streak: %v", err)
	}
	if err := db.Model(streak).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate streak: %v", err)
	}

	_, err := svc.RecordOutcome(testCtx(), streak.ID, true, time.Now().UTC())
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
