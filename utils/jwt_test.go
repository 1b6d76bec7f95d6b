package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)

	token, err := ti.GenerateToken(42, "admin")
	require.NoError(t, err)

	claims, err := ti.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)
	token, err := ti.GenerateToken(7, "customer")
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ti.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRequiresUser(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)
	token, err := ti.GenerateToken(0, "customer")
	require.NoError(t, err)

	_, err = ti.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
