package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassanmehmood/medicart/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(42, "jane@example.com", auth.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken(7, "jane@example.com", auth.RoleUser)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ValidateToken(tampered)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pill")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pill", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pill"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
