package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

func newHealthFixture(t *testing.T) (*gorm.DB, HealthIndexCalculator, *types.User, *types.Dimension) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	defs := repos.NewMetricDefinitionRepo(db, log)
	records := repos.NewMetricRecordRepo(db, log)
	snapshots := repos.NewHealthIndexSnapshotRepo(db, log)
	aggregation := NewMetricAggregationService(defs, records, log)
	calc := NewHealthIndexCalculator(defs, aggregation, snapshots, log)

	user := createTestUser(t, db)
	dim := createHealthDimension(t, db)
	return db, calc, user, dim
}

func createMetricDef(t *testing.T, db *gorm.DB, def *types.MetricDefinition) *types.MetricDefinition {
	t.Helper()
	if err := db.Create(def).Error; err != nil {
		t.Fatalf("create metric definition: %v", err)
	}
	return def
}

func recordValue(t *testing.T, db *gorm.DB, user *types.User, code string, value float64, at time.Time) {
	t.Helper()
	rec := &types.MetricRecord{
		UserID:      user.ID,
		MetricCode:  code,
		ValueNumber: ptr(value),
		RecordedAt:  at,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("create metric record: %v", err)
	}
}

func TestHealthIndexWeightRenormalization(t *testing.T) {
	db, calc, user, dim := newHealthFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// sleep scores 100 at its target, rhr scores 50 halfway into its band
	createMetricDef(t, db, &types.MetricDefinition{
		Code: "sleep_hours", Name: "Sleep", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		TargetValue:     ptr(8.0), MinValue: ptr(4.0),
		Weight: 0.20, IsActive: true,
	})
	createMetricDef(t, db, &types.MetricDefinition{
		Code: "resting_heart_rate", Name: "RHR", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrBelow,
		TargetValue:     ptr(60.0), MaxValue: ptr(100.0),
		Weight: 0.30, IsActive: true,
	})
	// third metric has no data and must not drag the index down
	createMetricDef(t, db, &types.MetricDefinition{
		Code: "hrv", Name: "HRV", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		TargetValue:     ptr(70.0), MinValue: ptr(20.0),
		Weight: 0.50, IsActive: true,
	})

	recordValue(t, db, user, "sleep_hours", 8.5, daysAgo(asOf, 1))
	recordValue(t, db, user, "resting_heart_rate", 80, daysAgo(asOf, 2))

	result, err := calc.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// (100*0.20 + 50*0.30) / 0.50 = 70
	if result.Score != 70 {
		t.Fatalf("score = %v, want 70", result.Score)
	}
	if len(result.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(result.Components))
	}
}

func TestHealthIndexNoMetricsConfigured(t *testing.T) {
	_, calc, user, _ := newHealthFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	result, err := calc.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("score = %v, want 0", result.Score)
	}
	if len(result.Components) != 0 {
		t.Fatalf("components = %d, want 0", len(result.Components))
	}
}

func TestHealthIndexIgnoresRecordsOutsideWindow(t *testing.T) {
	db, calc, user, dim := newHealthFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	createMetricDef(t, db, &types.MetricDefinition{
		Code: "sleep_hours", Name: "Sleep", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		TargetValue:     ptr(8.0), MinValue: ptr(4.0),
		Weight: 1.0, IsActive: true,
	})
	recordValue(t, db, user, "sleep_hours", 4.0, daysAgo(asOf, 30))

	result, err := calc.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(result.Components) != 0 {
		t.Fatalf("stale record scored, components = %d", len(result.Components))
	}
}

func TestHealthIndexDeterministicForAsOfDate(t *testing.T) {
	db, calc, user, dim := newHealthFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	createMetricDef(t, db, &types.MetricDefinition{
		Code: "sleep_hours", Name: "Sleep", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		TargetValue:     ptr(8.0), MinValue: ptr(4.0),
		Weight: 1.0, IsActive: true,
	})
	recordValue(t, db, user, "sleep_hours", 6.0, daysAgo(asOf, 1))

	first, err := calc.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	second, err := calc.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("second Calculate: %v", err)
	}
	if first.Score != second.Score {
		t.Fatalf("scores differ: %v vs %v", first.Score, second.Score)
	}
}

func TestHealthIndexSaveSnapshot(t *testing.T) {
	db, calc, user, dim := newHealthFixture(t)
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	createMetricDef(t, db, &types.MetricDefinition{
		Code: "sleep_hours", Name: "Sleep", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		TargetValue:     ptr(8.0), MinValue: ptr(4.0),
		Weight: 1.0, IsActive: true,
	})
	recordValue(t, db, user, "sleep_hours", 8.0, daysAgo(asOf, 1))

	result, err := calc.Calculate(testCtx(), user.ID, &asOf)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	snapshot, err := calc.SaveSnapshot(testCtx(), nil, result, user.ID)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if snapshot.Score != result.Score {
		t.Fatalf("snapshot score = %v, want %v", snapshot.Score, result.Score)
	}

	var count int64
	if err := db.Model(&types.HealthIndexSnapshot{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 1 {
		t.Fatalf("snapshot rows = %d, want 1", count)
	}
}
