package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/auth"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	tokens *auth.TokenManager,
	authHandler *handler.AuthHandler,
	referralHandler *handler.ReferralHandler,
	depositHandler *handler.DepositHandler,
	accountHandler *handler.AccountHandler,
	adminHandler *handler.AdminHandler,
	logger coreport.Logger,
) {
	v1 := router.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	authenticated := v1.Group("")
	authenticated.Use(middleware.RequireAuth(tokens, logger))
	{
		referralRoutes := authenticated.Group("/referral")
		{
			referralRoutes.GET("/code", referralHandler.GetCode)
			referralRoutes.GET("/dashboard", referralHandler.GetDashboard)
		}

		depositRoutes := authenticated.Group("/deposits")
		{
			depositRoutes.POST("", depositHandler.Submit)
			depositRoutes.GET("", depositHandler.List)
		}

		accountRoutes := authenticated.Group("/account")
		{
			accountRoutes.GET("/summary", accountHandler.GetSummary)
			accountRoutes.POST("/withdrawals", accountHandler.SubmitWithdrawal)
			accountRoutes.GET("/withdrawals", accountHandler.ListWithdrawals)
		}

		adminRoutes := authenticated.Group("/admin")
		adminRoutes.Use(middleware.RequireAdmin(logger))
		{
			adminRoutes.POST("/deposits/:depositId/confirm", adminHandler.ConfirmDeposit)
			adminRoutes.POST("/rewards/:rewardId/approve", adminHandler.ApproveReward)
			adminRoutes.GET("/rewards/pending", adminHandler.ListPendingRewards)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
