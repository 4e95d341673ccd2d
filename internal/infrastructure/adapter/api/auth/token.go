package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/amirhossein-jamali/referral-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-engine/internal/domain/port/core"
)

// Claims carries the identity extracted from a verified token
type Claims struct {
	UserID uint64
	Email  string
	Role   entity.Role
}

// TokenManager issues and verifies HMAC-signed bearer tokens
type TokenManager struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewTokenManager creates a new TokenManager
func NewTokenManager(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Generate creates a signed token for a user
func (m *TokenManager) Generate(user *entity.User) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("token secret not configured")
	}

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.ID
	claims["email"] = user.Email
	claims["role"] = string(user.Role)
	claims["exp"] = m.timeProvider.Now().Add(m.ttl).Unix()

	return token.SignedString(m.secret)
}

// Validate verifies a token and returns its claims
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid user ID in token")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Claims{
		UserID: uint64(userID),
		Email:  email,
		Role:   entity.Role(role),
	}, nil
}
