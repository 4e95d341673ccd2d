package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/referral-engine/internal/domain/error"
	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/auth"
	"github.com/amirhossein-jamali/referral-engine/internal/infrastructure/adapter/api/dto"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// RequireAuth verifies the bearer token and stores the caller's identity
// in the request context
func RequireAuth(tokens *auth.TokenManager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
				Message: "Authorization header is required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
				Message: "Invalid authorization header format",
			})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			logger.Warn("Token validation failed", map[string]any{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, string(claims.Role))
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. Must run after
// RequireAuth.
func RequireAdmin(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if entity.Role(role) != entity.RoleAdmin {
			logger.Warn("Non-admin attempted admin access", map[string]any{
				"user_id": c.GetUint64(ContextUserID),
				"path":    c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user ID from the request context
func CallerID(c *gin.Context) uint64 {
	return c.GetUint64(ContextUserID)
}

// CallerRole returns the authenticated role from the request context
func CallerRole(c *gin.Context) entity.Role {
	return entity.Role(c.GetString(ContextRole))
}
