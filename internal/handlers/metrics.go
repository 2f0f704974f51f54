package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/requestdata"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type MetricsHandler struct {
	defs    repos.MetricDefinitionRepo
	records repos.MetricRecordRepo
}

func NewMetricsHandler(defs repos.MetricDefinitionRepo, records repos.MetricRecordRepo) *MetricsHandler {
	return &MetricsHandler{defs: defs, records: records}
}

func (mh *MetricsHandler) ListDefinitions(c *gin.Context) {
	defs, err := mh.defs.GetActive(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"definitions": defs})
}

func (mh *MetricsHandler) RecordObservation(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req struct {
		MetricCode  string     `json:"metric_code" binding:"required"`
		ValueNumber *float64   `json:"value_number"`
		ValueBool   *bool      `json:"value_bool"`
		ValueText   *string    `json:"value_text"`
		RecordedAt  *time.Time `json:"recorded_at"`
		Source      string     `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if _, err := mh.defs.GetByCode(c.Request.Context(), nil, req.MetricCode); err != nil {
		RespondServiceError(c, err)
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	record := &types.MetricRecord{
		UserID:      userID,
		MetricCode:  req.MetricCode,
		ValueNumber: req.ValueNumber,
		ValueBool:   req.ValueBool,
		ValueText:   req.ValueText,
		RecordedAt:  recordedAt,
		Source:      req.Source,
	}
	if _, err := mh.records.Create(c.Request.Context(), nil, []*types.MetricRecord{record}); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (mh *MetricsHandler) ListObservations(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	code := c.Param("code")

	records, err := mh.records.GetByUserAndCode(c.Request.Context(), nil, userID, code, 100)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}
