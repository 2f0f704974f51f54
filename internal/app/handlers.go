package app

import (
	"github.com/yungbote/lifeos-backend/internal/handlers"
	"github.com/yungbote/lifeos-backend/internal/logger"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Metrics *handlers.MetricsHandler
	Tasks   *handlers.TasksHandler
	Streaks *handlers.StreaksHandler
	Finance *handlers.FinanceHandler
	Scores  *handlers.ScoresHandler
}

func wireHandlers(log *logger.Logger, cfg Config, r Repos, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:    handlers.NewAuthHandler(s.Auth),
		Metrics: handlers.NewMetricsHandler(r.MetricDefinition, r.MetricRecord),
		Tasks:   handlers.NewTasksHandler(r.LifeTask, r.TaskCompletion, s.Streak),
		Streaks: handlers.NewStreaksHandler(s.Streak),
		Finance: handlers.NewFinanceHandler(r.Account, r.Transaction, r.IncomeSource, r.NetWorthSnapshot),
		Scores: handlers.NewScoresHandler(
			s.ScoreAggregator,
			s.HealthIndex,
			s.Adherence,
			s.WealthHealth,
			r.LifeOsScoreSnapshot,
			cfg.AdherenceWindowDays,
		),
	}
}
