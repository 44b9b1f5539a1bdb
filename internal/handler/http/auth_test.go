package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_CorrectPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"password": testAdminPassword}))

	require.Equal(t, http.StatusOK, resp.StatusCode)

	login := decodeData[LoginResponse](t, resp)
	assert.NotEmpty(t, login.Token)

	var adminCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == AdminCookieName {
			adminCookie = c
		}
	}
	require.NotNil(t, adminCookie, "login must set the admin cookie")
	assert.True(t, adminCookie.HttpOnly)
	assert.Equal(t, login.Token, adminCookie.Value)
	assert.Zero(t, adminCookie.MaxAge, "the admin session has no expiry")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{"password": "letmein"}))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestLogin_MissingPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, map[string]string{}))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout_ClearsCookieAndGate(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	// Authenticated via the cookie jar.
	resp := env.do(t, http.MethodGet, "/api/v1/admin/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The cleared cookie locks the admin panel again.
	resp = env.do(t, http.MethodGet, "/api/v1/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnvWithRate(t, 1, 2)

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		resp := env.do(t, http.MethodPost, "/api/v1/auth/login",
			jsonBody(t, map[string]string{"password": "letmein"}))
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Contains(t, statuses, http.StatusTooManyRequests)
}
