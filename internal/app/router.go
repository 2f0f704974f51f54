package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeos-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		AuthHandler:    h.Auth,
		MetricsHandler: h.Metrics,
		TasksHandler:   h.Tasks,
		StreaksHandler: h.Streaks,
		FinanceHandler: h.Finance,
		ScoresHandler:  h.Scores,
		AuthMiddleware: m.Auth,
	})
}
