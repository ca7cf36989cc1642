package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "parliament"

// TokenManager signs and verifies bearer tokens carrying a session descriptor.
// Tokens have no expiry; logout is client side.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the descriptor
func (tm *TokenManager) Issue(desc models.SessionDescriptor) (string, error) {
	if desc.LoginName == "" {
		return "", errors.New("cannot issue a token without a login name")
	}

	claims := &models.TokenClaims{
		LoginName:    desc.LoginName,
		Role:         desc.Role,
		LegislatorID: desc.LegislatorID,
		DisplayName:  desc.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Issuer:   tokenIssuer,
			Subject:  desc.LoginName,
			IssuedAt: jwt.NewNumericDate(tm.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token and returns its claims
func (tm *TokenManager) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return tm.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid || claims.LoginName == "" {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}
