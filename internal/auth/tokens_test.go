package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, "hbnb-test", time.Hour)

	raw, err := manager.Issue("user-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	token, err := manager.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", token.Claims.UserID)
	assert.True(t, token.Claims.IsAdmin)
	assert.NotEmpty(t, token.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	manager := NewTokenManager(testSecret, "hbnb-test", time.Hour)
	other := NewTokenManager("another-secret-another-secret-xx", "hbnb-test", time.Hour)

	raw, err := other.Issue("user-1", false)
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestTokenVerifyRejectsWrongIssuer(t *testing.T) {
	manager := NewTokenManager(testSecret, "hbnb-test", time.Hour)
	other := NewTokenManager(testSecret, "someone-else", time.Hour)

	raw, err := other.Issue("user-1", false)
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	manager := NewTokenManager(testSecret, "hbnb-test", -time.Minute)

	raw, err := manager.Issue("user-1", false)
	require.NoError(t, err)

	_, err = manager.Verify(raw)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestTokenIssueRejectsEmptyUser(t *testing.T) {
	manager := NewTokenManager(testSecret, "hbnb-test", time.Hour)
	_, err := manager.Issue("", false)
	assert.Error(t, err)
}
