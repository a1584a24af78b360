package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	token, payload, err := maker.CreateToken("user-42", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", verified.Subject)
	assert.Equal(t, payload.ID, verified.ID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), verified.ExpiresAt.Time, 2*time.Second)
}

func TestJWTMakerExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	token, _, err := maker.CreateToken("user-42", -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTMakerRejectsOtherSecretAndAlgorithm(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	other, err := NewJWTMaker("another-secret-key")
	require.NoError(t, err)
	token, _, err := other.CreateToken("user-42", time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	payload, err := NewPayload("user-42", time.Minute)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, payload).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = maker.VerifyToken(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTMakerShortKey(t *testing.T) {
	_, err := NewJWTMaker("short")
	require.Error(t, err)
}
