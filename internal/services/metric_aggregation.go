package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// MetricAggregationService resolves one representative value for a metric
// over a time window using the definition's aggregation mode. A nil result
// with nil error means "no data" (the metric is skipped, not scored 0).
type MetricAggregationService interface {
	AggregateMetric(ctx context.Context, metricCode string, userID uuid.UUID, start, end time.Time) (*float64, error)
}

type metricAggregationService struct {
	defs    repos.MetricDefinitionRepo
	records repos.MetricRecordRepo
	log     *logger.Logger
}

func NewMetricAggregationService(defs repos.MetricDefinitionRepo, records repos.MetricRecordRepo, baseLog *logger.Logger) MetricAggregationService {
	return &metricAggregationService{
		defs:    defs,
		records: records,
		log:     baseLog.With("service", "MetricAggregationService"),
	}
}

func (s *metricAggregationService) AggregateMetric(ctx context.Context, metricCode string, userID uuid.UUID, start, end time.Time) (*float64, error) {
	if metricCode == "" {
		return nil, fmt.Errorf("%w: metric code is required", pkgerrors.ErrInvalidArgument)
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: window end must be after start", pkgerrors.ErrInvalidArgument)
	}

	def, err := s.defs.GetByCode(ctx, nil, metricCode)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			s.log.Warn("Metric definition not found", "metric_code", metricCode)
			return nil, nil
		}
		return nil, fmt.Errorf("load metric definition %s: %w", metricCode, err)
	}
	if !def.IsActive {
		return nil, nil
	}

	records, err := s.records.GetNumericInWindow(ctx, nil, userID, metricCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("load metric records %s: %w", metricCode, err)
	}
	if len(records) == 0 {
		s.log.Debug("No metric records in window", "metric_code", metricCode)
		return nil, nil
	}

	var result float64
	switch def.AggregationType {
	case types.AggregationLast:
		// records are ordered oldest first
		result = *records[len(records)-1].ValueNumber
	case types.AggregationSum:
		for _, rec := range records {
			result += *rec.ValueNumber
		}
	case types.AggregationAverage:
		var sum float64
		for _, rec := range records {
			sum += *rec.ValueNumber
		}
		result = sum / float64(len(records))
	case types.AggregationMin:
		result = *records[0].ValueNumber
		for _, rec := range records[1:] {
			if *rec.ValueNumber < result {
				result = *rec.ValueNumber
			}
		}
	case types.AggregationMax:
		result = *records[0].ValueNumber
		for _, rec := range records[1:] {
			if *rec.ValueNumber > result {
				result = *rec.ValueNumber
			}
		}
	case types.AggregationCount:
		result = float64(len(records))
	default:
		return nil, fmt.Errorf("%w: unsupported aggregation type %q", pkgerrors.ErrInvalidArgument, def.AggregationType)
	}

	s.log.Debug("Aggregated metric records",
		"metric_code", metricCode,
		"record_count", len(records),
		"aggregation_type", def.AggregationType,
		"result", result,
	)
	return &result, nil
}
