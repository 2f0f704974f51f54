package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeos-backend/internal/logger"
	pkgerrors "github.com/yungbote/lifeos-backend/internal/pkg/errors"
	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/scoring"
	"github.com/yungbote/lifeos-backend/internal/types"
)

// Component weights sum to 1.00. The weighted mean renormalizes over the
// components that were computable, so a user missing a data source is scored
// on what exists rather than penalized with zeros.
const (
	WeightSavingsRate     = 0.25
	WeightDebtToIncome    = 0.20
	WeightEmergencyFund   = 0.20
	WeightDiversification = 0.15
	WeightNetWorthGrowth  = 0.20
)

// Sub-score targets and anchors.
const (
	targetSavingsRate        = 0.30
	dtiHealthyRatio          = 0.30
	dtiCriticalRatio         = 1.00
	targetEmergencyMonths    = 6.0
	targetAnnualGrowthRate   = 0.08
	diversifiedTypeThreshold = 4
	growthWindowMonths       = 12
	savingsWindowMonths      = 3
)

const (
	ComponentSavingsRate     = "savings_rate"
	ComponentDebtToIncome    = "debt_to_income"
	ComponentEmergencyFund   = "emergency_fund"
	ComponentDiversification = "diversification"
	ComponentNetWorthGrowth  = "net_worth_growth"
)

// WealthHealthCalculator scores financial posture from accounts,
// transactions, income sources and net worth history.
type WealthHealthCalculator interface {
	Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.WealthHealthResult, error)
	SaveSnapshot(ctx context.Context, tx *gorm.DB, result *types.WealthHealthResult, userID uuid.UUID) (*types.WealthHealthSnapshot, error)
}

type wealthHealthCalculator struct {
	accounts     repos.AccountRepo
	transactions repos.TransactionRepo
	income       repos.IncomeSourceRepo
	netWorth     repos.NetWorthSnapshotRepo
	snapshots    repos.WealthHealthSnapshotRepo
	log          *logger.Logger
}

func NewWealthHealthCalculator(
	accounts repos.AccountRepo,
	transactions repos.TransactionRepo,
	income repos.IncomeSourceRepo,
	netWorth repos.NetWorthSnapshotRepo,
	snapshots repos.WealthHealthSnapshotRepo,
	baseLog *logger.Logger,
) WealthHealthCalculator {
	return &wealthHealthCalculator{
		accounts:     accounts,
		transactions: transactions,
		income:       income,
		netWorth:     netWorth,
		snapshots:    snapshots,
		log:          baseLog.With("service", "WealthHealthCalculator"),
	}
}

func (s *wealthHealthCalculator) Calculate(ctx context.Context, userID uuid.UUID, asOfDate *time.Time) (*types.WealthHealthResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", pkgerrors.ErrInvalidArgument)
	}

	evaluationDate := time.Now().UTC()
	if asOfDate != nil {
		evaluationDate = *asOfDate
	}

	s.log.Info("Calculating Wealth Health Score", "user_id", userID, "as_of", evaluationDate)

	accounts, err := s.accounts.GetActiveByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	monthlyIncome, err := s.income.SumActiveMonthly(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load income sources: %w", err)
	}

	savingsStart := evaluationDate.AddDate(0, -savingsWindowMonths, 0)
	incomeInWindow, err := s.transactions.SumByCategoryInWindow(ctx, nil, userID, types.TransactionIncome, savingsStart, evaluationDate)
	if err != nil {
		return nil, fmt.Errorf("sum income transactions: %w", err)
	}
	expensesInWindow, err := s.transactions.SumByCategoryInWindow(ctx, nil, userID, types.TransactionExpense, savingsStart, evaluationDate)
	if err != nil {
		return nil, fmt.Errorf("sum expense transactions: %w", err)
	}

	components := make([]types.WealthComponent, 0, 5)

	if c, ok := savingsRateComponent(incomeInWindow, expensesInWindow); ok {
		components = append(components, c)
	}
	if c, ok := debtToIncomeComponent(accounts, monthlyIncome); ok {
		components = append(components, c)
	}
	if c, ok := emergencyFundComponent(accounts, expensesInWindow); ok {
		components = append(components, c)
	}
	if c, ok := diversificationComponent(accounts); ok {
		components = append(components, c)
	}
	growth, ok, err := s.netWorthGrowthComponent(ctx, userID, evaluationDate)
	if err != nil {
		return nil, err
	}
	if ok {
		components = append(components, growth)
	}

	weighted := make([]scoring.WeightedComponent, 0, len(components))
	for _, c := range components {
		weighted = append(weighted, scoring.WeightedComponent{Score: c.Score, Weight: c.Weight})
	}
	score := scoring.Round2(scoring.WeightedMean(weighted))

	s.log.Info("Wealth Health calculated",
		"user_id", userID,
		"score", score,
		"component_count", len(components),
	)

	return &types.WealthHealthResult{
		Score:        score,
		Components:   components,
		CalculatedAt: evaluationDate,
	}, nil
}

// savingsRateComponent: share of trailing income not spent, against a 30%
// target. Computable only when income was recorded in the window.
func savingsRateComponent(income, expenses float64) (types.WealthComponent, bool) {
	if income <= 0 {
		return types.WealthComponent{}, false
	}
	rate := (income - expenses) / income
	score := scoring.Clamp(rate/targetSavingsRate*100, 0, 100)
	return types.WealthComponent{
		ComponentCode: ComponentSavingsRate,
		ActualValue:   rate,
		Score:         scoring.Round2(score),
		Weight:        WeightSavingsRate,
	}, true
}

// debtToIncomeComponent: total liability balances against annual income.
// 100 at or below a 0.30 ratio, 0 at or above 1.00, linear between.
func debtToIncomeComponent(accounts []*types.Account, monthlyIncome float64) (types.WealthComponent, bool) {
	if monthlyIncome <= 0 {
		return types.WealthComponent{}, false
	}
	var totalDebt float64
	for _, acct := range accounts {
		if acct.IsLiability {
			// liabilities may be stored with either sign
			totalDebt += math.Abs(acct.CurrentBalance)
		}
	}
	ratio := totalDebt / (monthlyIncome * 12)

	var score float64
	switch {
	case ratio <= dtiHealthyRatio:
		score = 100
	case ratio >= dtiCriticalRatio:
		score = 0
	default:
		score = (dtiCriticalRatio - ratio) / (dtiCriticalRatio - dtiHealthyRatio) * 100
	}
	return types.WealthComponent{
		ComponentCode: ComponentDebtToIncome,
		ActualValue:   ratio,
		Score:         scoring.Round2(score),
		Weight:        WeightDebtToIncome,
	}, true
}

// emergencyFundComponent: liquid balances (bank and investment accounts)
// over average monthly expenses, against a 6-month target. Needs recorded
// expenses to size a month; without them coverage is undefined, not infinite.
func emergencyFundComponent(accounts []*types.Account, expensesInWindow float64) (types.WealthComponent, bool) {
	monthlyExpenses := expensesInWindow / savingsWindowMonths
	if monthlyExpenses <= 0 {
		return types.WealthComponent{}, false
	}
	var liquid float64
	for _, acct := range accounts {
		if acct.IsLiability {
			continue
		}
		if acct.AccountType == types.AccountTypeBank || acct.AccountType == types.AccountTypeInvestment {
			liquid += acct.CurrentBalance
		}
	}
	monthsCovered := liquid / monthlyExpenses
	score := scoring.Clamp(monthsCovered/targetEmergencyMonths*100, 0, 100)
	return types.WealthComponent{
		ComponentCode: ComponentEmergencyFund,
		ActualValue:   monthsCovered,
		Score:         scoring.Round2(score),
		Weight:        WeightEmergencyFund,
	}, true
}

// diversificationComponent: distinct non-liability account types with a
// positive balance, on a stepped curve saturating at 4 types. A user with
// accounts but no positive assets sits at the 50 neutral point.
func diversificationComponent(accounts []*types.Account) (types.WealthComponent, bool) {
	if len(accounts) == 0 {
		return types.WealthComponent{}, false
	}
	seen := map[types.AccountType]bool{}
	for _, acct := range accounts {
		if !acct.IsLiability && acct.CurrentBalance > 0 {
			seen[acct.AccountType] = true
		}
	}
	distinct := len(seen)

	var score float64
	switch {
	case distinct >= diversifiedTypeThreshold:
		score = 100
	case distinct == 3:
		score = 80
	case distinct == 2:
		score = 60
	case distinct == 1:
		score = 40
	default:
		score = 50
	}
	return types.WealthComponent{
		ComponentCode: ComponentDiversification,
		ActualValue:   float64(distinct),
		Score:         score,
		Weight:        WeightDiversification,
	}, true
}

// netWorthGrowthComponent: annualized growth between the two most recent
// snapshots in the trailing year, against an 8% target. Needs two snapshots
// and a positive older baseline.
func (s *wealthHealthCalculator) netWorthGrowthComponent(ctx context.Context, userID uuid.UUID, asOf time.Time) (types.WealthComponent, bool, error) {
	windowStart := asOf.AddDate(0, -growthWindowMonths, 0)
	snapshots, err := s.netWorth.GetLatestTwoInWindow(ctx, nil, userID, windowStart, asOf)
	if err != nil {
		return types.WealthComponent{}, false, fmt.Errorf("load net worth snapshots: %w", err)
	}
	if len(snapshots) < 2 {
		return types.WealthComponent{}, false, nil
	}

	latest, earlier := snapshots[0], snapshots[1]
	if earlier.NetWorth <= 0 {
		return types.WealthComponent{}, false, nil
	}
	elapsedDays := latest.SnapshotDate.Sub(earlier.SnapshotDate).Hours() / 24
	if elapsedDays <= 0 {
		return types.WealthComponent{}, false, nil
	}

	periodGrowth := (latest.NetWorth - earlier.NetWorth) / earlier.NetWorth
	annualized := periodGrowth * (365 / elapsedDays)
	score := scoring.Clamp(annualized/targetAnnualGrowthRate*100, 0, 100)

	return types.WealthComponent{
		ComponentCode: ComponentNetWorthGrowth,
		ActualValue:   annualized,
		Score:         scoring.Round2(score),
		Weight:        WeightNetWorthGrowth,
	}, true, nil
}

func (s *wealthHealthCalculator) SaveSnapshot(ctx context.Context, tx *gorm.DB, result *types.WealthHealthResult, userID uuid.UUID) (*types.WealthHealthSnapshot, error) {
	componentsJSON, err := json.Marshal(result.Components)
	if err != nil {
		return nil, fmt.Errorf("marshal wealth components: %w", err)
	}

	snapshot := &types.WealthHealthSnapshot{
		UserID:     userID,
		Timestamp:  result.CalculatedAt,
		Score:      result.Score,
		Components: componentsJSON,
	}
	if _, err := s.snapshots.Create(ctx, tx, snapshot); err != nil {
		return nil, fmt.Errorf("save wealth health snapshot: %w", err)
	}

	s.log.Info("Saved Wealth Health snapshot",
		"snapshot_id", snapshot.ID,
		"user_id", userID,
		"score", snapshot.Score,
	)
	return snapshot, nil
}
