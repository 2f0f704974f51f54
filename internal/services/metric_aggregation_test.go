package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

func newAggregationFixture(t *testing.T) (*gorm.DB, MetricAggregationService, *types.User, *types.Dimension) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	defs := repos.NewMetricDefinitionRepo(db, log)
	records := repos.NewMetricRecordRepo(db, log)
	svc := NewMetricAggregationService(defs, records, log)

	user := createTestUser(t, db)
	dim := createHealthDimension(t, db)
	return db, svc, user, dim
}

func TestAggregateMetricModes(t *testing.T) {
	db, svc, user, dim := newAggregationFixture(t)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	start := daysAgo(end, 7)

	tests := []struct {
		name string
		mode types.AggregationType
		want float64
	}{
		{"sum", types.AggregationSum, 60},
		{"average", types.AggregationAverage, 20},
		{"min", types.AggregationMin, 10},
		{"max", types.AggregationMax, 30},
		{"count", types.AggregationCount, 3},
		{"last", types.AggregationLast, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := "metric_" + string(tt.mode)
			createMetricDef(t, db, &types.MetricDefinition{
				Code: code, Name: code, DimensionID: &dim.ID,
				AggregationType: tt.mode,
				TargetDirection: types.TargetAtOrAbove,
				Weight:          1.0, IsActive: true,
			})
			// oldest to newest: 10, 20, 30
			for i, v := range []float64{10, 20, 30} {
				recordValue(t, db, user, code, v, daysAgo(end, 3-i))
			}

			got, err := svc.AggregateMetric(testCtx(), code, user.ID, start, end)
			if err != nil {
				t.Fatalf("AggregateMetric: %v", err)
			}
			if got == nil {
				t.Fatal("got nil, want value")
			}
			if *got != tt.want {
				t.Fatalf("value = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestAggregateMetricNoData(t *testing.T) {
	db, svc, user, dim := newAggregationFixture(t)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	createMetricDef(t, db, &types.MetricDefinition{
		Code: "sleep_hours", Name: "Sleep", DimensionID: &dim.ID,
		AggregationType: types.AggregationAverage,
		TargetDirection: types.TargetAtOrAbove,
		Weight:          1.0, IsActive: true,
	})

	got, err := svc.AggregateMetric(testCtx(), "sleep_hours", user.ID, daysAgo(end, 7), end)
	if err != nil {
		t.Fatalf("AggregateMetric: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil for no data", *got)
	}
}

func TestAggregateMetricUnknownCode(t *testing.T) {
	_, svc, user, _ := newAggregationFixture(t)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	got, err := svc.AggregateMetric(testCtx(), "does_not_exist", user.ID, daysAgo(end, 7), end)
	if err != nil {
		t.Fatalf("AggregateMetric: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil for unknown metric", *got)
	}
}

func TestAggregateMetricRejectsInvertedWindow(t *testing.T) {
	_, svc, user, _ := newAggregationFixture(t)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if _, err := svc.AggregateMetric(testCtx(), "sleep_hours", user.ID, end, daysAgo(end, 7)); err == nil {
		t.Fatal("expected error for window end before start")
	}
}
