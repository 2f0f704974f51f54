package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifeos-backend/internal/repos"
	"github.com/yungbote/lifeos-backend/internal/requestdata"
	"github.com/yungbote/lifeos-backend/internal/types"
)

type FinanceHandler struct {
	accounts     repos.AccountRepo
	transactions repos.TransactionRepo
	income       repos.IncomeSourceRepo
	netWorth     repos.NetWorthSnapshotRepo
}

func NewFinanceHandler(
	accounts repos.AccountRepo,
	transactions repos.TransactionRepo,
	income repos.IncomeSourceRepo,
	netWorth repos.NetWorthSnapshotRepo,
) *FinanceHandler {
	return &FinanceHandler{
		accounts:     accounts,
		transactions: transactions,
		income:       income,
		netWorth:     netWorth,
	}
}

func (fh *FinanceHandler) CreateAccount(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req struct {
		Name           string  `json:"name" binding:"required"`
		AccountType    string  `json:"account_type" binding:"required"`
		IsLiability    bool    `json:"is_liability"`
		CurrentBalance float64 `json:"current_balance"`
		Currency       string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	account := &types.Account{
		UserID:         userID,
		Name:           req.Name,
		AccountType:    types.AccountType(req.AccountType),
		IsLiability:    req.IsLiability,
		CurrentBalance: req.CurrentBalance,
		Currency:       currency,
		IsActive:       true,
	}
	if _, err := fh.accounts.Create(c.Request.Context(), nil, []*types.Account{account}); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, account)
}

func (fh *FinanceHandler) ListAccounts(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	accounts, err := fh.accounts.GetActiveByUser(c.Request.Context(), nil, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"accounts": accounts})
}

func (fh *FinanceHandler) CreateTransaction(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req struct {
		AccountID  *uuid.UUID `json:"account_id"`
		Category   string     `json:"category" binding:"required"`
		Amount     float64    `json:"amount" binding:"required"`
		Note       string     `json:"note"`
		RecordedAt *time.Time `json:"recorded_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	txn := &types.Transaction{
		UserID:     userID,
		AccountID:  req.AccountID,
		Category:   types.TransactionCategory(req.Category),
		Amount:     req.Amount,
		Note:       req.Note,
		RecordedAt: recordedAt,
	}
	if _, err := fh.transactions.Create(c.Request.Context(), nil, []*types.Transaction{txn}); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, txn)
}

func (fh *FinanceHandler) CreateIncomeSource(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req struct {
		Name       string  `json:"name" binding:"required"`
		BaseAmount float64 `json:"base_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	source := &types.IncomeSource{
		UserID:     userID,
		Name:       req.Name,
		BaseAmount: req.BaseAmount,
		IsActive:   true,
	}
	if _, err := fh.income.Create(c.Request.Context(), nil, []*types.IncomeSource{source}); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, source)
}

func (fh *FinanceHandler) CreateNetWorthSnapshot(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())

	var req struct {
		NetWorth     float64    `json:"net_worth" binding:"required"`
		SnapshotDate *time.Time `json:"snapshot_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	snapshotDate := time.Now().UTC()
	if req.SnapshotDate != nil {
		snapshotDate = *req.SnapshotDate
	}
	snapshot := &types.NetWorthSnapshot{
		UserID:       userID,
		NetWorth:     req.NetWorth,
		SnapshotDate: snapshotDate,
	}
	if _, err := fh.netWorth.Create(c.Request.Context(), nil, []*types.NetWorthSnapshot{snapshot}); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, snapshot)
}
