package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
)

// writeError maps a domain error to an HTTP response
func writeError(c *gin.Context, logger coreport.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domainerr.ErrInvalidCredentials), errors.Is(err, domainerr.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case domainerr.IsForbiddenError(err):
		status = http.StatusForbidden
		message = "Access denied"
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	case domainerr.IsConflictError(err):
		status = http.StatusConflict
		message = err.Error()
	case domainerr.IsInsufficientBalanceError(err),
		errors.Is(err, domainerr.ErrWithdrawalExceedsTotal),
		errors.Is(err, domainerr.ErrWithdrawalNotAllowed):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case domainerr.IsValidationError(err):
		status = http.StatusBadRequest
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func toDepositResponse(d *entity.Deposit) dto.DepositResponse {
	return dto.DepositResponse{
		ID:              d.ID,
		Amount:          d.Amount,
		Currency:        d.Currency,
		TransactionHash: d.TransactionHash,
		Status:          string(d.Status),
		CreatedAt:       formatTime(d.CreatedAt),
		ConfirmedAt:     formatTimePtr(d.ConfirmedAt),
	}
}

func toRewardResponse(r *entity.ReferralReward) dto.RewardResponse {
	return dto.RewardResponse{
		ID:             r.ID,
		ReferredUserID: r.ReferredUserID,
		Amount:         r.GetAmount(),
		PlanAmount:     r.PlanAmount,
		PlanType:       r.PlanType,
		Status:         string(r.Status),
		CreatedAt:      formatTime(r.CreatedAt),
	}
}

func toWithdrawalResponse(w *entity.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:        w.ID,
		Reference: w.Reference,
		Amount:    w.GetAmount(),
		Currency:  w.Currency,
		Address:   w.Address,
		Status:    string(w.Status),
		CreatedAt: formatTime(w.CreatedAt),
	}
}
