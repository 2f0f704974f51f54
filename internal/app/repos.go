package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	"github.com/yungbote/lifeos-backend/internal/repos"
)

type Repos struct {
	User                 repos.UserRepo
	MetricDefinition     repos.MetricDefinitionRepo
	MetricRecord         repos.MetricRecordRepo
	LifeTask             repos.LifeTaskRepo
	TaskCompletion       repos.TaskCompletionRepo
	Streak               repos.StreakRepo
	Account              repos.AccountRepo
	Transaction          repos.TransactionRepo
	IncomeSource         repos.IncomeSourceRepo
	NetWorthSnapshot     repos.NetWorthSnapshotRepo
	HealthIndexSnapshot  repos.HealthIndexSnapshotRepo
	AdherenceSnapshot    repos.AdherenceSnapshotRepo
	WealthHealthSnapshot repos.WealthHealthSnapshotRepo
	LifeOsScoreSnapshot  repos.LifeOsScoreSnapshotRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                 repos.NewUserRepo(db, log),
		MetricDefinition:     repos.NewMetricDefinitionRepo(db, log),
		MetricRecord:         repos.NewMetricRecordRepo(db, log),
		LifeTask:             repos.NewLifeTaskRepo(db, log),
		TaskCompletion:       repos.NewTaskCompletionRepo(db, log),
		Streak:               repos.NewStreakRepo(db, log),
		Account:              repos.NewAccountRepo(db, log),
		Transaction:          repos.NewTransactionRepo(db, log),
		IncomeSource:         repos.NewIncomeSourceRepo(db, log),
		NetWorthSnapshot:     repos.NewNetWorthSnapshotRepo(db, log),
		HealthIndexSnapshot:  repos.NewHealthIndexSnapshotRepo(db, log),
		AdherenceSnapshot:    repos.NewAdherenceSnapshotRepo(db, log),
		WealthHealthSnapshot: repos.NewWealthHealthSnapshotRepo(db, log),
		LifeOsScoreSnapshot:  repos.NewLifeOsScoreSnapshotRepo(db, log),
	}
}
