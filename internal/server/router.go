package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeos-backend/internal/handlers"
	"github.com/yungbote/lifeos-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins    string
	AuthHandler     *handlers.AuthHandler
	MetricsHandler  *handlers.MetricsHandler
	TasksHandler    *handlers.TasksHandler
	StreaksHandler  *handlers.StreaksHandler
	FinanceHandler  *handlers.FinanceHandler
	ScoresHandler   *handlers.ScoresHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := []string{"http://localhost:3000"}
	if cfg.AllowOrigins != "" {
		origins = strings.Split(cfg.AllowOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// metrics
	api.GET("/metrics/definitions", cfg.MetricsHandler.ListDefinitions)
	api.POST("/metrics/records", cfg.MetricsHandler.RecordObservation)
	api.GET("/metrics/records/:code", cfg.MetricsHandler.ListObservations)

	// tasks and streaks
	api.POST("/tasks", cfg.TasksHandler.Create)
	api.GET("/tasks", cfg.TasksHandler.List)
	api.POST("/tasks/:id/complete", cfg.TasksHandler.Complete)
	api.GET("/streaks", cfg.StreaksHandler.List)

	// finance
	api.POST("/accounts", cfg.FinanceHandler.CreateAccount)
	api.GET("/accounts", cfg.FinanceHandler.ListAccounts)
	api.POST("/transactions", cfg.FinanceHandler.CreateTransaction)
	api.POST("/income-sources", cfg.FinanceHandler.CreateIncomeSource)
	api.POST("/net-worth", cfg.FinanceHandler.CreateNetWorthSnapshot)

	// scores
	api.GET("/scores/life", cfg.ScoresHandler.GetLifeScore)
	api.POST("/scores/life/recompute", cfg.ScoresHandler.RecomputeLifeScore)
	api.GET("/scores/health", cfg.ScoresHandler.GetHealthIndex)
	api.GET("/scores/adherence", cfg.ScoresHandler.GetAdherence)
	api.GET("/scores/wealth", cfg.ScoresHandler.GetWealthHealth)
	api.GET("/scores/history", cfg.ScoresHandler.GetHistory)

	return router
}
