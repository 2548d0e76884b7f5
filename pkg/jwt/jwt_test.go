package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)
	sessionID := uuid.New()

	token, err := service.GenerateSessionToken(sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateSessionToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)
	sessionID := uuid.New()

	token, err := service.GenerateSessionToken(sessionID)
	require.NoError(t, err)

	claims, err := service.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, sessionID.String(), claims.Subject)
	assert.Equal(t, "wildex-frontend", claims.Issuer)
}

func TestValidateSessionToken_WrongSecret(t *testing.T) {
	service := NewService("test-secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	token, err := service.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	service := NewService("test-secret", -time.Minute)

	token, err := service.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = service.ValidateSessionToken(token)
	assert.Error(t, err)
	assert.True(t, service.IsTokenExpired(token))
}

func TestValidateSessionToken_Garbage(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	_, err := service.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
	assert.True(t, service.IsTokenExpired("not-a-token"))
}

func TestIsTokenExpired_ValidToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	token, err := service.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	assert.False(t, service.IsTokenExpired(token))
}
