package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printops/inkwell/pkg/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := auth.GenerateToken(42, "jdoe", "supervisor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "supervisor", claims.Role)
	assert.NotEmpty(t, claims.ID, "token should carry a JTI for revocation")
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_TokensAreUnique(t *testing.T) {
	t1, err := auth.GenerateToken(1, "a", "employee")
	require.NoError(t, err)
	t2, err := auth.GenerateToken(1, "a", "employee")
	require.NoError(t, err)

	c1, err := auth.ValidateToken(t1)
	require.NoError(t, err)
	c2, err := auth.ValidateToken(t2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID, "each token gets its own JTI")
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestMemoryBlacklist(t *testing.T) {
	bl := auth.NewMemoryBlacklist()
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Entries with no remaining lifetime are never recorded
	require.NoError(t, bl.Revoke(ctx, "jti-2", -time.Second))
	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
