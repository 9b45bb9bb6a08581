package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"source-manager-backend/internal/config"
	apperrors "source-manager-backend/internal/errors"
)

// Claims represents JWT token claims for an admin session
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenResponse represents the response for a successful login
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// AuthService issues and validates admin session tokens. The application
// has a single shared admin passcode rather than per-user accounts.
type AuthService struct {
	secret   []byte
	passcode string
	ttl      time.Duration
}

// NewAuthService creates a new authentication service from configuration
func NewAuthService(cfg *config.Config) *AuthService {
	ttl := time.Duration(cfg.TokenTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &AuthService{
		secret:   []byte(cfg.JWTSecret),
		passcode: cfg.AdminPasscode,
		ttl:      ttl,
	}
}

// Login verifies the admin passcode and issues a signed JWT
func (s *AuthService) Login(passcode string) (*TokenResponse, error) {
	if subtle.ConstantTimeCompare([]byte(passcode), []byte(s.passcode)) != 1 {
		return nil, apperrors.ErrInvalidPasscode
	}

	now := time.Now()
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "source-manager-backend",
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

// ValidateToken parses and verifies a JWT, returning its claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
