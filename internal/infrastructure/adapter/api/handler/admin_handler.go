package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	depositUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/deposit"
	rewardUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/reward"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/middleware"
)

// AdminHandler handles the admin review operations: deposit confirmation
// and reward approval
type AdminHandler struct {
	deposits *depositUseCase.Service
	rewards  *rewardUseCase.Service
	logger   coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	deposits *depositUseCase.Service,
	rewards *rewardUseCase.Service,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		deposits: deposits,
		rewards:  rewards,
		logger:   logger,
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid ID format",
		})
		return 0, false
	}
	return id, true
}

// ConfirmDeposit handles POST /admin/deposits/:depositId/confirm
func (h *AdminHandler) ConfirmDeposit(c *gin.Context) {
	depositID, ok := parseIDParam(c, "depositId")
	if !ok {
		return
	}

	result, err := h.deposits.Confirm(c.Request.Context(), depositID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := dto.ConfirmDepositResponse{
		Deposit: toDepositResponse(result.Deposit),
	}
	if result.Reward != nil {
		reward := toRewardResponse(result.Reward)
		response.Reward = &reward
	}

	c.JSON(http.StatusOK, response)
}

// ApproveReward handles POST /admin/rewards/:rewardId/approve
func (h *AdminHandler) ApproveReward(c *gin.Context) {
	rewardID, ok := parseIDParam(c, "rewardId")
	if !ok {
		return
	}

	reward, err := h.rewards.Approve(c.Request.Context(), rewardID, middleware.CallerRole(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toRewardResponse(reward))
}

// ListPendingRewards handles GET /admin/rewards/pending
func (h *AdminHandler) ListPendingRewards(c *gin.Context) {
	rewards, err := h.rewards.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	responses := make([]dto.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		responses = append(responses, toRewardResponse(r))
	}

	c.JSON(http.StatusOK, responses)
}
