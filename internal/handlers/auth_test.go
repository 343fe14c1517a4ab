package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	r := setupRouter(t)

	w, env := doJSON(t, r, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "alice",
		"email":    "alice@example.test",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var registered struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeData(t, env, &registered)
	assert.Equal(t, models.RoleMember, registered.User.Role)
	assert.NotEmpty(t, registered.Token)

	w, env = doJSON(t, r, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.test",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)

	var logged struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &logged)

	w, env = doJSON(t, r, "GET", "/api/auth/me", nil, logged.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var me models.User
	decodeData(t, env, &me)
	assert.Equal(t, "alice", me.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "alice", models.RoleMember)

	w, env := doJSON(t, r, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "impostor",
		"email":    "alice@example.test",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Email already registered", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	w, env := doJSON(t, r, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "bob",
		"email":    "not-an-email",
		"password": "short",
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "alice", models.RoleMember)

	w, env := doJSON(t, r, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.test",
		"password": "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestLoginSuspendedAccount(t *testing.T) {
	r := setupRouter(t)
	user := createUser(t, "alice", models.RoleMember)
	require.NoError(t, db.DB.Model(user).Update("is_suspended", true).Error)

	w, env := doJSON(t, r, "POST", "/api/auth/login", map[string]interface{}{
		"email":    "alice@example.test",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account suspended", env.Message)
}

func TestMeRequiresAuth(t *testing.T) {
	r := setupRouter(t)

	w, env := doJSON(t, r, "GET", "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthenticated", env.Message)
}
