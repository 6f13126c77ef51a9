package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"retail-sense/internal/config"
)

var (
	jwtKey   = []byte("change-me-retail-sense")
	tokenTTL = 24 * time.Hour
)

// Configure sets the signing key and token lifetime. Called once at startup.
func Configure(cfg config.JWTConfig) {
	if cfg.Secret != "" {
		jwtKey = []byte(cfg.Secret)
	}
	if cfg.TTL > 0 {
		tokenTTL = cfg.TTL
	}
}

// Claims defines what is inside the token
type Claims struct {
	UserID uint   `json:"userID"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a user
func GenerateToken(userID uint, email, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tokenTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "retail-sense",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtKey)
	return signed, expiresAt, err
}

// ValidateToken checks if a token is forged or expired
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
