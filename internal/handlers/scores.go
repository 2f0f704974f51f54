package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/requestdata"
	"github.com/yungbote/lifeos-backend/internal/services"
)

type ScoresHandler struct {
	aggregator    services.ScoreAggregator
	health        services.HealthIndexCalculator
	adherence     services.AdherenceCalculator
	wealth        services.WealthHealthCalculator
	lifeSnapshots repos.LifeOsScoreSnapshotRepo
	adherenceDays int
}

func NewScoresHandler(
	aggregator services.ScoreAggregator,
	health services.HealthIndexCalculator,
	adherence services.AdherenceCalculator,
	wealth services.WealthHealthCalculator,
	lifeSnapshots repos.LifeOsScoreSnapshotRepo,
	adherenceDays int,
) *ScoresHandler {
	return &ScoresHandler{
		aggregator:    aggregator,
		health:        health,
		adherence:     adherence,
		wealth:        wealth,
		lifeSnapshots: lifeSnapshots,
		adherenceDays: adherenceDays,
	}
}

// asOfDate reads an optional ?as_of=RFC3339 query parameter. Nil means now.
func asOfDate(c *gin.Context) (*time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (sh *ScoresHandler) GetLifeScore(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	asOf, err := asOfDate(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_as_of", err)
		return
	}
	result, err := sh.aggregator.Calculate(c.Request.Context(), userID, asOf)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// RecomputeLifeScore runs a full round and persists the four snapshots.
func (sh *ScoresHandler) RecomputeLifeScore(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	asOf, err := asOfDate(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_as_of", err)
		return
	}
	result, err := sh.aggregator.CalculateAndSnapshot(c.Request.Context(), userID, asOf)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *ScoresHandler) GetHealthIndex(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	asOf, err := asOfDate(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_as_of", err)
		return
	}
	result, err := sh.health.Calculate(c.Request.Context(), userID, asOf)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *ScoresHandler) GetAdherence(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	asOf, err := asOfDate(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_as_of", err)
		return
	}
	windowDays := sh.adherenceDays
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_window_days", err)
			return
		}
		windowDays = parsed
	}
	result, err := sh.adherence.Calculate(c.Request.Context(), userID, asOf, windowDays)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *ScoresHandler) GetWealthHealth(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	asOf, err := asOfDate(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_as_of", err)
		return
	}
	result, err := sh.wealth.Calculate(c.Request.Context(), userID, asOf)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *ScoresHandler) GetHistory(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	limit := 30
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}
	snapshots, err := sh.lifeSnapshots.ListByUser(c.Request.Context(), nil, userID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"snapshots": snapshots})
}
