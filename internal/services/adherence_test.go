package services

import (
	"math"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

func newAdherenceFixture(t *testing.T) (*gorm.DB, AdherenceCalculator, *types.User) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	tasks := repos.NewLifeTaskRepo(db, log)
	completions := repos.NewTaskCompletionRepo(db, log)
	streaks := repos.NewStreakRepo(db, log)
	snapshots := repos.NewAdherenceSnapshotRepo(db, log)
	calc := NewAdherenceCalculator(tasks, completions, streaks, snapshots, log)

	user := createTestUser(t, db)
	return db, calc, user
}

func createHabit(t *testing.T, db *gorm.DB, user *types.User, frequency types.Frequency, startDate time.Time) *types.LifeTask {
	t.Helper()
	task := &types.LifeTask{
		UserID:    user.ID,
		Title:     "habit",
		TaskType:  types.TaskTypeHabit,
		Frequency: frequency,
		StartDate: startDate,
		IsActive:  true,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func completeTask(t *testing.T, db *gorm.DB, user *types.User, task *types.LifeTask, at time.Time) {
	t.Helper()
	completion := &types.TaskCompletion{
		UserID:      user.ID,
		TaskID:      task.ID,
		CompletedAt: at,
	}
	if err := db.Create(completion).Error; err != nil {
		t.Fatalf("create completion: %v", err)
	}
}

func TestAdherenceDailyHabitPartialCompletion(t *testing.T) {
	db, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := createHabit(t, db, user, types.FrequencyDaily, daysAgo(asOf, 30))
	for _, d := range []int{1, 3, 5} {
		completeTask(t, db, user, task, daysAgo(asOf, d))
	}

	result, err := calc.Calculate(testCtx(), user.ID, &asOf, 7)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.TasksScheduled != 7 {
		t.Fatalf("tasksScheduled = %d, want 7", result.TasksScheduled)
	}
	if result.TasksCompleted != 3 {
		t.Fatalf("tasksCompleted = %d, want 3", result.TasksCompleted)
	}
	if result.PenaltyFactor != 1.0 {
		t.Fatalf("penaltyFactor = %v, want 1.0", result.PenaltyFactor)
	}
	// 3/7 * 100 = 42.857... rounds to 42.86
	if result.Score != 42.86 {
		t.Fatalf("score = %v, want 42.86", result.Score)
	}
}

func TestAdherencePenaltyFactorFloorsAtHalf(t *testing.T) {
	db, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := createHabit(t, db, user, types.FrequencyDaily, daysAgo(asOf, 30))
	for d := 1; d <= 7; d++ {
		completeTask(t, db, user, task, daysAgo(asOf, d))
	}
	streak := &types.Streak{
		UserID:           user.ID,
		TaskID:           &task.ID,
		RiskPenaltyScore: 200,
		IsActive:         true,
	}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("create streak: %v", err)
	}

	result, err := calc.Calculate(testCtx(), user.ID, &asOf, 7)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.RawAdherence != 1.0 {
		t.Fatalf("rawAdherence = %v, want 1.0", result.RawAdherence)
	}
	if result.PenaltyFactor != 0.5 {
		t.Fatalf("penaltyFactor = %v, want 0.5", result.PenaltyFactor)
	}
	if result.Score != 50 {
		t.Fatalf("score = %v, want 50", result.Score)
	}
}

func TestAdherenceWeeklyHabitMinimumOnePeriod(t *testing.T) {
	db, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := createHabit(t, db, user, types.FrequencyWeekly, daysAgo(asOf, 60))
	completeTask(t, db, user, task, daysAgo(asOf, 2))

	result, err := calc.Calculate(testCtx(), user.ID, &asOf, 7)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.TasksScheduled != 1 {
		t.Fatalf("tasksScheduled = %d, want 1", result.TasksScheduled)
	}
	if result.Score != 100 {
		t.Fatalf("score = %v, want 100", result.Score)
	}
}

func TestAdherenceCompletionsCappedPerTask(t *testing.T) {
	db, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// weekly habit completed three times in one week still counts once
	weekly := createHabit(t, db, user, types.FrequencyWeekly, daysAgo(asOf, 60))
	for _, d := range []int{1, 2, 3} {
		completeTask(t, db, user, weekly, daysAgo(asOf, d))
	}
	daily := createHabit(t, db, user, types.FrequencyDaily, daysAgo(asOf, 60))

	result, err := calc.Calculate(testCtx(), user.ID, &asOf, 7)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.TasksScheduled != 8 {
		t.Fatalf("tasksScheduled = %d, want 8", result.TasksScheduled)
	}
	if result.TasksCompleted != 1 {
		t.Fatalf("tasksCompleted = %d, want 1", result.TasksCompleted)
	}
	_ = daily
}

func TestAdherenceNoScheduledTasks(t *testing.T) {
	db, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// ad-hoc tasks never count as scheduled
	createHabit(t, db, user, types.FrequencyAdHoc, daysAgo(asOf, 60))

	result, err := calc.Calculate(testCtx(), user.ID, &asOf, 7)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.TasksScheduled != 0 {
		t.Fatalf("tasksScheduled = %d, want 0", result.TasksScheduled)
	}
	if result.RawAdherence != 0 || result.Score != 0 {
		t.Fatalf("rawAdherence = %v score = %v, want 0 and 0", result.RawAdherence, result.Score)
	}
}

func TestAdherenceRejectsInvalidWindow(t *testing.T) {
	_, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if _, err := calc.Calculate(testCtx(), user.ID, &asOf, 0); err == nil {
		t.Fatal("expected error for zero window")
	}
	if _, err := calc.Calculate(testCtx(), user.ID, &asOf, -7); err == nil {
		t.Fatal("expected error for negative window")
	}
}

func TestAdherenceAveragePenaltyAcrossStreaks(t *testing.T) {
	db, calc, user := newAdherenceFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := createHabit(t, db, user, types.FrequencyDaily, daysAgo(asOf, 30))
	for d := 1; d <= 7; d++ {
		completeTask(t, db, user, task, daysAgo(asOf, d))
	}
	for _, penalty := range []float64{10, 30} {
		streak := &types.Streak{
			UserID:           user.ID,
			TaskID:           &task.ID,
			RiskPenaltyScore: penalty,
			IsActive:         true,
		}
		if err := db.Create(streak).Error; err != nil {
			t.Fatalf("create streak: %v", err)
		}
	}

	result, err := calc.Calculate(testCtx(), user.ID, &asOf, 7)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// avg penalty 20 -> factor 0.8 -> 100 * 0.8
	if math.Abs(result.PenaltyFactor-0.8) > 1e-9 {
		t.Fatalf("penaltyFactor = %v, want 0.8", result.PenaltyFactor)
	}
	if result.Score != 80 {
		t.Fatalf("score = %v, want 80", result.Score)
	}
}
