package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the registered claims plus the id of the authenticated user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// TokenManager issues and verifies HS256 tokens with a fixed secret and
// validity period.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenManager(secret []byte, validity time.Duration) *TokenManager {
	return &TokenManager{secret: secret, validity: validity, now: time.Now}
}

func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return s, nil
}

// Verify returns the user id carried by token. An expired token yields
// common.ErrTokenExpired; any other failure wraps common.ErrInvalidToken.
func (m *TokenManager) Verify(token string) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.UserID == "" {
		return "", fmt.Errorf("%w: missing user id", common.ErrInvalidToken)
	}

	return claims.UserID, nil
}
