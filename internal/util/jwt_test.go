package util

import (
	"bizcanvas_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "owner@example.com",
		Role:      model.RoleUser,
	}

	token, err := GenerateJWT(user, "test-secret-test-secret-test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret-test-secret-test-secret")
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "a@b.c", Role: model.RoleUser}

	token, err := GenerateJWT(user, "correct-secret-correct-secret-ok", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "wrong-secret-wrong-secret-wrong!")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "a@b.c", Role: model.RoleUser}

	token, err := GenerateJWT(user, "test-secret-test-secret-test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret-test-secret-test-secret")
	assert.Error(t, err)
}
