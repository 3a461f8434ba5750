package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("super-secret"), time.Hour)

	tok, err := m.Issue("user-123")
	require.NoError(t, err)

	got, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("secret"), 24*time.Hour)
	issuedAt := time.Now().Add(-25 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	tok, err := m.Issue("u1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.NotErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager([]byte("right-secret"), time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenManager([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager([]byte("k"), time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u3"}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager(secret, time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_MissingUserID(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager(secret, time.Hour).Verify(tok)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}
