package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/services"
)

type Services struct {
	Auth              services.AuthService
	MetricAggregation services.MetricAggregationService
	HealthIndex       services.HealthIndexCalculator
	Adherence         services.AdherenceCalculator
	WealthHealth      services.WealthHealthCalculator
	ScoreAggregator   services.ScoreAggregator
	Streak            services.StreakService
	Seed              services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	aggregation := services.NewMetricAggregationService(r.MetricDefinition, r.MetricRecord, log)
	health := services.NewHealthIndexCalculator(r.MetricDefinition, aggregation, r.HealthIndexSnapshot, log)
	adherence := services.NewAdherenceCalculator(r.LifeTask, r.TaskCompletion, r.Streak, r.AdherenceSnapshot, log)
	wealth := services.NewWealthHealthCalculator(r.Account, r.Transaction, r.IncomeSource, r.NetWorthSnapshot, r.WealthHealthSnapshot, log)
	aggregator := services.NewScoreAggregator(health, adherence, wealth, r.LifeOsScoreSnapshot, db, cfg.AdherenceWindowDays, log)

	return Services{
		Auth:              services.NewAuthService(r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL, log),
		MetricAggregation: aggregation,
		HealthIndex:       health,
		Adherence:         adherence,
		WealthHealth:      wealth,
		ScoreAggregator:   aggregator,
		Streak:            services.NewStreakService(r.Streak, r.LifeTask, log),
		Seed:              services.NewSeedService(db, r.MetricDefinition, log),
	}
}
