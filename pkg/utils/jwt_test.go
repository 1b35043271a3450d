package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	userID := uuid.New()
	token, err := CreateToken(userID, "user")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestSigningKeyReadPerCall(t *testing.T) {
	// The secret can arrive via a .env file loaded well after package init,
	// so a token signed under one secret must not validate under another.
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := CreateToken(uuid.New(), "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "first-secret")
	_, err = ValidateToken(token)
	assert.NoError(t, err)
}
