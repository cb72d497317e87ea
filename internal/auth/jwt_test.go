package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("k", 32)

func TestJWTMaker_RoundTrip(t *testing.T) {
	m := NewJWTMaker(testSecret)
	userID := uuid.New()
	claims, err := NewCallerClaims(userID, RoleRecruiter, time.Minute)
	require.NoError(t, err)

	token, err := m.CreateToken(claims)
	require.NoError(t, err)

	got, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, RoleRecruiter, got.Role)
}

func TestJWTMaker_Rejects(t *testing.T) {
	m := NewJWTMaker(testSecret)

	expired, err := NewCallerClaims(uuid.New(), RoleScorer, -time.Minute)
	require.NoError(t, err)
	token, err := m.CreateToken(expired)
	require.NoError(t, err)
	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	claims, err := NewCallerClaims(uuid.New(), RoleScorer, time.Minute)
	require.NoError(t, err)
	foreign, err := NewJWTMaker(strings.Repeat("x", 32)).CreateToken(claims)
	require.NoError(t, err)
	_, err = m.VerifyToken(foreign)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.VerifyToken(none)
	assert.Error(t, err)
}
