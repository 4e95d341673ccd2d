package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	depositUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/deposit"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/middleware"
)

// DepositHandler handles deposit submission and listing
type DepositHandler struct {
	deposits *depositUseCase.Service
	logger   coreport.Logger
}

// NewDepositHandler creates a new deposit handler instance
func NewDepositHandler(deposits *depositUseCase.Service, logger coreport.Logger) *DepositHandler {
	return &DepositHandler{
		deposits: deposits,
		logger:   logger,
	}
}

// Submit handles POST /deposits
func (h *DepositHandler) Submit(c *gin.Context) {
	var req dto.SubmitDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidPlanAmount),
			Message: "Invalid request body",
		})
		return
	}

	userID := middleware.CallerID(c)

	dep, err := h.deposits.Submit(c.Request.Context(), userID, req.Amount, req.Currency, req.TransactionHash)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toDepositResponse(dep))
}

// List handles GET /deposits
func (h *DepositHandler) List(c *gin.Context) {
	userID := middleware.CallerID(c)

	deposits, err := h.deposits.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	responses := make([]dto.DepositResponse, 0, len(deposits))
	for _, d := range deposits {
		responses = append(responses, toDepositResponse(d))
	}

	c.JSON(http.StatusOK, responses)
}
