package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	userUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/auth"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	users  *userUseCase.UserUseCase
	tokens *auth.TokenManager
	logger coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(users *userUseCase.UserUseCase, tokens *auth.TokenManager, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidEmail),
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.ReferralCode)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}
