package app

import (
	"time"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/utils"
)

type Config struct {
	JWTSecretKey         string
	AccessTokenTTL       time.Duration
	AllowOrigins         string
	AdherenceWindowDays  int
	RecomputeInterval    time.Duration
	StreakSweepInterval  time.Duration
	SeedDefaultCatalogue bool
}

func LoadConfig(log *logger.Logger) Config {
	accessTTLMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15, log)
	recomputeMinutes := utils.GetEnvAsInt("SCORE_RECOMPUTE_INTERVAL_MINUTES", 60, log)
	streakSweepMinutes := utils.GetEnvAsInt("STREAK_SWEEP_INTERVAL_MINUTES", 24*60, log)

	return Config{
		JWTSecretKey:         utils.GetEnv("JWT_SECRET_KEY", "dev-secret-change-me", log),
		AccessTokenTTL:       time.Duration(accessTTLMinutes) * time.Minute,
		AllowOrigins:         utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log),
		AdherenceWindowDays:  utils.GetEnvAsInt("ADHERENCE_WINDOW_DAYS", 7, log),
		RecomputeInterval:    time.Duration(recomputeMinutes) * time.Minute,
		StreakSweepInterval:  time.Duration(streakSweepMinutes) * time.Minute,
		SeedDefaultCatalogue: utils.GetEnv("SEED_DEFAULT_CATALOGUE", "true", log) == "true",
	}
}
