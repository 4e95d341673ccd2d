package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	referralUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/referral"
	rewardUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/reward"
	userUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/middleware"
)

// ReferralHandler handles referral code and dashboard requests
type ReferralHandler struct {
	codes   *referralUseCase.CodeRegistry
	rewards *rewardUseCase.Service
	users   *userUseCase.UserUseCase
	logger  coreport.Logger
}

// NewReferralHandler creates a new referral handler instance
func NewReferralHandler(
	codes *referralUseCase.CodeRegistry,
	rewards *rewardUseCase.Service,
	users *userUseCase.UserUseCase,
	logger coreport.Logger,
) *ReferralHandler {
	return &ReferralHandler{
		codes:   codes,
		rewards: rewards,
		users:   users,
		logger:  logger,
	}
}

// GetCode handles GET /referral/code. The code is generated lazily on
// first request.
func (h *ReferralHandler) GetCode(c *gin.Context) {
	userID := middleware.CallerID(c)

	code, err := h.codes.GetOrCreateCode(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReferralCodeResponse{
		UserID:       userID,
		ReferralCode: code,
	})
}

// GetDashboard handles GET /referral/dashboard
func (h *ReferralHandler) GetDashboard(c *gin.Context) {
	userID := middleware.CallerID(c)

	code, err := h.codes.GetOrCreateCode(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	rewards, err := h.rewards.ListByReferrer(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	rewardResponses := make([]dto.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		rewardResponses = append(rewardResponses, toRewardResponse(r))
	}

	c.JSON(http.StatusOK, dto.ReferralDashboardResponse{
		UserID:        userID,
		ReferralCode:  code,
		ReferralCount: user.ReferralCount,
		Rewards:       rewardResponses,
	})
}
