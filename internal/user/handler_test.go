package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securecampus/internal/auth"
	"securecampus/internal/user"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, _ := newTestService(15 * time.Minute)
	h := user.NewHandler(svc)

	r := gin.New()
	h.RegisterRoutes(r, auth.RequireAuth("test-secret", "securecampus"))
	return r
}

func postJSON(r *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(r, "/auth/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		User        map[string]any `json:"user"`
		AccessToken string         `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "STUDENT", res.User["role"])
	assert.NotContains(t, res.User, "password")
	assert.NotContains(t, res.User, "password_hash")
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	r := newTestRouter(t)

	t.Run("short password", func(t *testing.T) {
		w := postJSON(r, "/auth/register", gin.H{"name": "Alice", "email": "alice@example.com", "password": "short"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad email", func(t *testing.T) {
		w := postJSON(r, "/auth/register", gin.H{"name": "Alice", "email": "not-an-email", "password": "password123"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		first := postJSON(r, "/auth/register", gin.H{"name": "Bob", "email": "bob@example.com", "password": "password123"}, "")
		require.Equal(t, http.StatusCreated, first.Code)
		second := postJSON(r, "/auth/register", gin.H{"name": "Bob Again", "email": "bob@example.com", "password": "password456"}, "")
		assert.Equal(t, http.StatusConflict, second.Code)
	})
}

func TestLoginEndpoint_Scenario(t *testing.T) {
	// Register, fail five times, get locked out even with the correct
	// password, all with indistinguishable error bodies along the way.
	r := newTestRouter(t)

	w := postJSON(r, "/auth/register", gin.H{"name": "Alice", "email": "alice@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	wrong := postJSON(r, "/auth/login", gin.H{"email": "alice@example.com", "password": "wrong-password"}, "")
	ghost := postJSON(r, "/auth/login", gin.H{"email": "ghost@example.com", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, ghost.Code)
	assert.JSONEq(t, wrong.Body.String(), ghost.Body.String())

	for i := 0; i < 4; i++ {
		postJSON(r, "/auth/login", gin.H{"email": "alice@example.com", "password": "wrong-password"}, "")
	}

	locked := postJSON(r, "/auth/login", gin.H{"email": "alice@example.com", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, locked.Code)
	assert.Contains(t, locked.Body.String(), "Too many login attempts")
}

func TestUsersEndpoints_RoleEnforcement(t *testing.T) {
	r := newTestRouter(t)

	reg := postJSON(r, "/auth/register", gin.H{"name": "Alice", "email": "alice@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusCreated, reg.Code)
	var student struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(reg.Body.Bytes(), &student))

	admReg := postJSON(r, "/auth/register", gin.H{"name": "Root", "email": "root@example.com", "password": "password123", "role": "ADMIN"}, "")
	require.Equal(t, http.StatusCreated, admReg.Code)
	var admin struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(admReg.Body.Bytes(), &admin))

	t.Run("me requires token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, getJSON(r, "/users/me", "").Code)
	})

	t.Run("me returns caller", func(t *testing.T) {
		w := getJSON(r, "/users/me", student.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@example.com")
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("list is admin only", func(t *testing.T) {
		w := getJSON(r, "/users", student.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = getJSON(r, "/users", admin.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@example.com")
		assert.Contains(t, w.Body.String(), "root@example.com")
	})
}
