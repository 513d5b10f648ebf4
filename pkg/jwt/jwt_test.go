package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateSessionToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "author", claims.Subject)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateSessionToken()
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("test-secret", time.Nanosecond)
	token, err := m.GenerateSessionToken()
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}
