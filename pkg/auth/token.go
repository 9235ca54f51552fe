package auth

import (
	"fmt"
	"time"

	"github.com/cometcontrol/comet-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "comet-backend"

var jwtSigningMethod = jwt.SigningMethodHS256

// AdminSessionClaims is the typed JWT carried in the admin session cookie.
type AdminSessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// MintAdminSession issues a signed session token using the configured TTL.
func MintAdminSession(cfg config.AdminConfig, now time.Time) (string, error) {
	if cfg.SessionSecret == "" {
		return "", fmt.Errorf("admin session secret is required")
	}
	if cfg.SessionTTL <= 0 {
		return "", fmt.Errorf("admin session ttl must be positive")
	}

	claims := AdminSessionClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseAdminSession validates the token string and returns typed claims.
func ParseAdminSession(cfg config.AdminConfig, tokenString string) (*AdminSessionClaims, error) {
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("admin session secret is required")
	}

	claims := &AdminSessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.SessionSecret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, err
	}
	if !claims.Admin {
		return nil, fmt.Errorf("token does not grant admin access")
	}

	return claims, nil
}
