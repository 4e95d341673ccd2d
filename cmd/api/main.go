package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	accountUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/account"
	depositUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/deposit"
	referralUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/referral"
	rewardUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/reward"
	userUseCase "github.com/amirhossein-jamali/referral-engine/internal/domain/usecase/user"

	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/auth"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	retryCfg := database.DefaultRetryConfig()
	if cfg.Database.RetryAttempts > 0 {
		retryCfg.MaxRetries = cfg.Database.RetryAttempts
		retryCfg.RetryInterval = cfg.Database.RetryDelay
	}

	var conn *database.Connection
	err = database.RetryOnTransientError(context.Background(), retryCfg, func() error {
		var connErr error
		conn, connErr = database.NewConnection(dbConfig)
		return connErr
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			appLogger.Error("Failed to close database connection", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(conn.DB, tp, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	if err := migration.SeedDefaultAdmin(context.Background(), userRepo,
		cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, tp, appLogger); err != nil {
		appLogger.Error("Failed to seed admin account", map[string]any{
			"error": err.Error(),
		})
	}

	// Use cases
	codeRegistry := referralUseCase.NewCodeRegistry(uow, tp, appLogger).
		WithRetryBounds(cfg.Referral.CodeAttempts, coreport.Duration(cfg.Referral.CodeRetryBackoff))
	attributor := referralUseCase.NewAttributor(uow, tp, appLogger)
	users := userUseCase.NewUserUseCase(userRepo, attributor.Attribute, tp, appLogger)
	deposits := depositUseCase.NewService(uow, tp, appLogger)
	rewards := rewardUseCase.NewService(uow, tp, appLogger)
	accounts := accountUseCase.NewService(uow, tp, appLogger)

	// API
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	authHandler := handler.NewAuthHandler(users, tokens, appLogger)
	referralHandler := handler.NewReferralHandler(codeRegistry, rewards, users, appLogger)
	depositHandler := handler.NewDepositHandler(deposits, appLogger)
	accountHandler := handler.NewAccountHandler(accounts, appLogger)
	adminHandler := handler.NewAdminHandler(deposits, rewards, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, tokens, authHandler, referralHandler,
		depositHandler, accountHandler, adminHandler, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	_ = appLogger.Flush()
	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}
	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or RE_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or RE_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missing = append(missing, "database.password (or RE_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or RE_DB_NAME environment variable)")
	}
	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwtSecret (RE_AUTH_JWT_SECRET environment variable)")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	return nil
}
