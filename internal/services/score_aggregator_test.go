package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

func newAggregatorFixture(t *testing.T) (*gorm.DB, ScoreAggregator, *types.User, *types.Dimension) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	defs := repos.NewMetricDefinitionRepo(db, log)
	records := repos.NewMetricRecordRepo(db, log)
	tasks := repos.NewLifeTaskRepo(db, log)
	completions := repos.NewTaskCompletionRepo(db, log)
	streaks := repos.NewStreakRepo(db, log)
	accounts := repos.NewAccountRepo(db, log)
	transactions := repos.NewTransactionRepo(db, log)
	income := repos.NewIncomeSourceRepo(db, log)
	netWorth := repos.NewNetWorthSnapshotRepo(db, log)

	aggregation := NewMetricAggregationService(defs, records, log)
	health := NewHealthIndexCalculator(defs, aggregation, repos.NewHealthIndexSnapshotRepo(db, log), log)
	adherence := NewAdherenceCalculator(tasks, completions, streaks, repos.NewAdherenceSnapshotRepo(db, log), log)
	wealth := NewWealthHealthCalculator(accounts, transactions, income, netWorth, repos.NewWealthHealthSnapshotRepo(db, log), log)
	aggregator := NewScoreAggregator(health, adherence, wealth, repos.NewLifeOsScoreSnapshotRepo(db, log), db, 7, log)

	user := createTestUser(t, db)
	dim := createHealthDimension(t, db)
	return db, aggregator, user, dim
}

func seedAggregatorData(t *testing.T, db *gorm.DB, user *types.User, dim *types.Dimension, asOf time.Time) {
	t.Helper()

	// health: sleep at 6h in a 4..8 band scores 50
	createMetricDef(t, db, &types.MetricDefinition{
		Code: "sleep_hours", Name: "Sleep", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		TargetValue:     ptr(8.0), MinValue: ptr(4.0),
		Weight: 1.0, IsActive: true,
	})
	recordValue(t, db, user, "sleep_hours", 6.0, daysAgo(asOf, 1))

	// adherence: daily habit with 3 of 7 completions scores 42.86
	task := createHabit(t, db, user, types.FrequencyDaily, daysAgo(asOf, 30))
	for _, d := range []int{1, 3, 5} {
		completeTask(t, db, user, task, daysAgo(asOf, d))
	}

	// wealth: 8% annual net worth growth scores 100
	snapshots := []*types.NetWorthSnapshot{
		{UserID: user.ID, SnapshotDate: asOf.AddDate(0, 0, -365), NetWorth: 100000},
		{UserID: user.ID, SnapshotDate: asOf, NetWorth: 108000},
	}
	for _, snap := range snapshots {
		if err := db.Create(snap).Error; err != nil {
			t.Fatalf("create net worth snapshot: %v", err)
		}
	}
}

func TestLifeScoreWeightedCombination(t *testing.T) {
	db, aggregator, user, dim := newAggregatorFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedAggregatorData(t, db, user, dim, asOf)

	result, err := aggregator.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.HealthIndex != 50 {
		t.Fatalf("health index = %v, want 50", result.HealthIndex)
	}
	if result.AdherenceIndex != 42.86 {
		t.Fatalf("adherence index = %v, want 42.86", result.AdherenceIndex)
	}
	if result.WealthHealthScore != 100 {
		t.Fatalf("wealth health = %v, want 100", result.WealthHealthScore)
	}
	// 0.4*50 + 0.3*42.86 + 0.3*100 = 62.858 -> 62.86
	if result.LifeScore != 62.86 {
		t.Fatalf("life score = %v, want 62.86", result.LifeScore)
	}
	if result.LongevityYearsAdded != 0 {
		t.Fatalf("longevity = %v, want 0", result.LongevityYearsAdded)
	}
	if len(result.DimensionScores) != 3 {
		t.Fatalf("dimension scores = %d, want 3", len(result.DimensionScores))
	}
}

func TestLifeScoreDeterministic(t *testing.T) {
	db, aggregator, user, dim := newAggregatorFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedAggregatorData(t, db, user, dim, asOf)

	first, err := aggregator.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	second, err := aggregator.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("second Calculate: %v", err)
	}
	if first.LifeScore != second.LifeScore {
		t.Fatalf("life scores differ: %v vs %v", first.LifeScore, second.LifeScore)
	}
}

func TestLifeScoreEmptyUserScoresZero(t *testing.T) {
	_, aggregator, user, _ := newAggregatorFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	result, err := aggregator.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.LifeScore != 0 {
		t.Fatalf("life score = %v, want 0", result.LifeScore)
	}
}

func TestCalculateAndSnapshotWritesAllFour(t *testing.T) {
	db, aggregator, user, dim := newAggregatorFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedAggregatorData(t, db, user, dim, asOf)

	result, err := aggregator.CalculateAndSnapshot(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("CalculateAndSnapshot: %v", err)
	}

	counts := map[string]interface{}{
		"health":    &types.HealthIndexSnapshot{},
		"adherence": &types.AdherenceSnapshot{},
		"wealth":    &types.WealthHealthSnapshot{},
		"life":      &types.LifeOsScoreSnapshot{},
	}
	for name, model := range counts {
		var count int64
		if err := db.Model(model).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %s snapshots: %v", name, err)
		}
		if count != 1 {
			t.Fatalf("%s snapshot rows = %d, want 1", name, count)
		}
	}

	var lifeSnap types.LifeOsScoreSnapshot
	if err := db.Where("user_id = ?", user.ID).First(&lifeSnap).Error; err != nil {
		t.Fatalf("load life snapshot: %v", err)
	}
	if lifeSnap.LifeScore != result.LifeScore {
		t.Fatalf("snapshot life score = %v, want %v", lifeSnap.LifeScore, result.LifeScore)
	}
	if lifeSnap.HealthIndex != result.HealthIndex ||
		lifeSnap.AdherenceIndex != result.AdherenceIndex ||
		lifeSnap.WealthHealthScore != result.WealthHealthScore {
		t.Fatal("snapshot pillar scores do not match the result")
	}
}
