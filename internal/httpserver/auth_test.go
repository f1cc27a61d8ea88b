package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func registerUser(env *testEnv, username, password string) {
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"username": username,
		"password": password,
	})
	require.NoError(env.T, env.Auth.Register(c))
	require.Equal(env.T, http.StatusCreated, rec.Code)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user",
		"password": "password",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	require.Equal(t, true, resp["success"])

	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok, "expected 'user' in response")
	require.Equal(t, "test_user", user["username"])
	require.Equal(t, "user", user["role"])
	require.NotEmpty(t, user["id"])
	_, leaked := user["passwordHash"]
	require.False(t, leaked, "password hash must never be serialized")

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user",
		"password": "other_password",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"Username already taken"}`, rec.Body.String())

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{
		"username": "incomplete",
	})
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	registerUser(env, "test_user", "password")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "test_user",
		"password": "password",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	require.Equal(t, true, resp["success"])
	user := resp["user"].(map[string]interface{})
	require.Equal(t, "test_user", user["username"])

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token" {
			session = ck
		}
	}
	require.NotNil(t, session, "login must set the token cookie")
	require.NotEmpty(t, session.Value)
	require.True(t, session.HttpOnly)

	// The issued cookie must be accepted by the order endpoints.
	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/orders", nil, session)
	require.NoError(t, env.Orders.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	registerUser(env, "test_user", "password")

	wrongPassword, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "test_user",
		"password": "invalid_password",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownUser, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "no_such_user",
		"password": "password",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	// Wrong password and unknown user are indistinguishable.
	require.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
	require.JSONEq(t, `{"success":false,"message":"Invalid username or password"}`, unknownUser.Body.String())
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil)
	require.NoError(t, env.Auth.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	require.Equal(t, true, resp["success"])
	require.Equal(t, "Logged out", resp["message"])

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token" {
			cleared = ck
		}
	}
	require.NotNil(t, cleared, "logout must clear the token cookie")
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}
