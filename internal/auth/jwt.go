package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

var (
	ErrMissingToken = errors.New("missing or invalid token")
	ErrInvalidToken = errors.New("invalid token")
)

var (
	mu        sync.RWMutex
	jwtSecret = []byte("super-secret-key")
	tokenTTL  = 15 * time.Minute
)

// Configure sets the signing secret and token lifetime.
func Configure(secret string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	jwtSecret = []byte(secret)
	tokenTTL = ttl
}

func settings() ([]byte, time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	return jwtSecret, tokenTTL
}

func GenerateToken(user models.User) (string, error) {
	secret, ttl := settings()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	secret, _ := settings()
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}

// TokenClaims parses a "Bearer <token>" header value.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return nil, nil, ErrMissingToken
	}

	token, err := ParseToken(strings.TrimPrefix(authorization, "Bearer "))
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}
	return token, claims, nil
}

// UserID reads the numeric subject of the claims.
func UserID(claims jwt.MapClaims) (int, error) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return int(sub), nil
}
