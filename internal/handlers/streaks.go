package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeos-backend/internal/requestdata"
	"github.com/yungbote/lifeos-backend/internal/services"
)

type StreaksHandler struct {
	streakService services.StreakService
}

func NewStreaksHandler(streakService services.StreakService) *StreaksHandler {
	return &StreaksHandler{streakService: streakService}
}

func (sh *StreaksHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	streaks, err := sh.streakService.ListActive(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streaks": streaks})
}
