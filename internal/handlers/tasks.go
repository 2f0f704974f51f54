package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/requestdata"
	"github.com/yungbote/lifeos-backend/internal/services"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type TasksHandler struct {
	tasks         repos.LifeTaskRepo
	completions   repos.TaskCompletionRepo
	streakService services.StreakService
}

func NewTasksHandler(tasks repos.LifeTaskRepo, completions repos.TaskCompletionRepo, streakService services.StreakService) *TasksHandler {
	return &TasksHandler{tasks: tasks, completions: completions, streakService: streakService}
}

func (th *TasksHandler) Create(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req struct {
		Title     string     `json:"title" binding:"required"`
		TaskType  string     `json:"task_type"`
		Frequency string     `json:"frequency"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	taskType := types.TaskTypeHabit
	if req.TaskType != "" {
		taskType = types.TaskType(req.TaskType)
	}
	frequency := types.FrequencyDaily
	if req.Frequency != "" {
		frequency = types.Frequency(req.Frequency)
	}
	startDate := time.Now().UTC()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	task := &types.LifeTask{
		UserID:    userID,
		Title:     req.Title,
		TaskType:  taskType,
		Frequency: frequency,
		StartDate: startDate,
		EndDate:   req.EndDate,
		IsActive:  true,
	}
	if _, err := th.tasks.Create(c.Request.Context(), nil, []*types.LifeTask{task}); err != nil {
		RespondServiceError(c, err)
		return
	}

	// habits are streak-tracked from day one
	if task.TaskType == types.TaskTypeHabit {
		if _, err := th.streakService.EnsureStreak(c.Request.Context(), userID, &task.ID, nil); err != nil {
			RespondServiceError(c, err)
			return
		}
	}
	RespondOK(c, task)
}

func (th *TasksHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	tasks, err := th.tasks.GetByUser(c.Request.Context(), nil, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"tasks": tasks})
}

// Complete records a completion and feeds it into the task's streak as a
// success.
func (th *TasksHandler) Complete(c *gin.Context) {
	ctx := c.Request.Context()
	userID := requestdata.UserID(ctx)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	task, err := th.tasks.GetByID(ctx, nil, taskID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if task.UserID != userID {
		RespondError(c, http.StatusNotFound, "not_found", pkgerrors.ErrNotFound)
		return
	}

	var req struct {
		CompletedAt *time.Time `json:"completed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	completedAt := time.Now().UTC()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	completion := &types.TaskCompletion{
		UserID:      userID,
		TaskID:      task.ID,
		CompletedAt: completedAt,
	}
	if _, err := th.completions.Create(ctx, nil, []*types.TaskCompletion{completion}); err != nil {
		RespondServiceError(c, err)
		return
	}

	if task.TaskType == types.TaskTypeHabit {
		streak, err := th.streakService.EnsureStreak(ctx, userID, &task.ID, nil)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		if _, err := th.streakService.RecordOutcome(ctx, streak.ID, true, completedAt); err != nil {
			RespondServiceError(c, err)
			return
		}
	}
	RespondOK(c, completion)
}
