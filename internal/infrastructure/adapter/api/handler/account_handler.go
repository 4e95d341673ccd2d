package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	accountUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/middleware"
)

// AccountHandler handles account summary and withdrawal requests
type AccountHandler struct {
	accounts *accountUseCase.Service
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts *accountUseCase.Service, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// GetSummary handles GET /account/summary
func (h *AccountHandler) GetSummary(c *gin.Context) {
	userID := middleware.CallerID(c)

	summary, err := h.accounts.GetAccountSummary(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountSummaryResponse{
		UserID:      summary.UserID,
		Balance:     summary.GetBalance(),
		PlanProfit:  summary.GetPlanProfit(),
		TotalProfit: summary.GetTotalProfit(),
		CanWithdraw: summary.CanWithdraw,
	})
}

// SubmitWithdrawal handles POST /account/withdrawals
func (h *AccountHandler) SubmitWithdrawal(c *gin.Context) {
	var req dto.SubmitWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid request body",
		})
		return
	}

	amountInCents, err := entity.ValidateAndConvertAmount(req.Amount)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	userID := middleware.CallerID(c)

	withdrawal, err := h.accounts.SubmitWithdrawal(c.Request.Context(), userID, amountInCents, req.Currency, req.Address)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toWithdrawalResponse(withdrawal))
}

// ListWithdrawals handles GET /account/withdrawals
func (h *AccountHandler) ListWithdrawals(c *gin.Context) {
	userID := middleware.CallerID(c)

	withdrawals, err := h.accounts.ListWithdrawals(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	responses := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		responses = append(responses, toWithdrawalResponse(w))
	}

	c.JSON(http.StatusOK, responses)
}
