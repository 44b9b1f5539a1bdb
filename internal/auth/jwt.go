package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims represents the JWT claims for an admin session token.
// The token carries no expiry: the admin stays signed in until an explicit
// logout clears the cookie.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RoleAdmin is the only role the storefront issues.
const RoleAdmin = "admin"

// TokenManager handles admin token generation and validation.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a token manager with the given HS256 secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// GenerateAdminToken creates a signed non-expiring admin token.
func (m *TokenManager) GenerateAdminToken() (string, error) {
	now := time.Now().UTC()
	claims := &AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  RoleAdmin,
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   "storefront",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}

	return signedToken, nil
}

// ValidateAdminToken parses and validates an admin token, returning the claims.
func (m *TokenManager) ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse admin token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid admin token claims")
	}
	if claims.Role != RoleAdmin {
		return nil, fmt.Errorf("unexpected role: %s", claims.Role)
	}

	return claims, nil
}
