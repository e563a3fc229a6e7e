package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mewicrm/mewi/internal/auth"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := mgr.Generate(userID, auth.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, auth.RoleManager, claims.Role)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := auth.NewJWTManager("secret-a", time.Hour).Generate(uuid.New(), auth.RoleClient)
	require.NoError(t, err)

	_, err = auth.NewJWTManager("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTManager_Expired(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := mgr.Generate(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("123456")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "123456"))
	assert.False(t, auth.CheckPassword(hash, "654321"))
}
