package token

import (
	"fmt"
	"strconv"
	"time"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	coreport "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated identity inside a signed token
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HMAC-signed bearer tokens
type JWTManager struct {
	secret       []byte
	tokenTTL     time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTManager creates a token manager. The secret must be non-empty.
func NewJWTManager(secret string, tokenTTL time.Duration, timeProvider coreport.TimeProvider) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 168 * time.Hour
	}
	return &JWTManager{
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		timeProvider: timeProvider,
	}, nil
}

// Generate signs a token for the given user
func (m *JWTManager) Generate(userID uint64, email string) (string, error) {
	now := m.timeProvider.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user ID and email.
// Any parse, signature or expiry failure maps to ErrUnauthorized.
func (m *JWTManager) Verify(tokenString string) (uint64, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.timeProvider.Now))
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s", errs.ErrUnauthorized, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", errs.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, "", fmt.Errorf("%w: malformed subject", errs.ErrUnauthorized)
	}

	return userID, claims.Email, nil
}
