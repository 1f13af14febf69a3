package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	authService, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)
	return authService
}

// newRouter mounts the middleware chain in front of a handler that records whether it ran.
func newRouter(handlers ...gin.HandlerFunc) (*gin.Engine, *bool) {
	called := false
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})
	r.Any("/*path", handlers...)
	return r, &called
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService := newAuthService(t)

	t.Run("valid token", func(t *testing.T) {
		token, err := authService.GenerateToken("U1", "ravi@example.com", models.RoleAdmin)
		require.NoError(t, err)

		var claims *models.Claims
		m := NewAuthMiddleware(authService, true)
		r, called := newRouter(m.Authenticate(), func(c *gin.Context) {
			claims, _ = GetClaims(c)
		})

		req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.True(t, *called)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, claims)
		assert.Equal(t, "U1", claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("missing header when required", func(t *testing.T) {
		r, called := newRouter(NewAuthMiddleware(authService, true).Authenticate())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles", nil))

		assert.False(t, *called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing header when optional", func(t *testing.T) {
		r, called := newRouter(NewAuthMiddleware(authService, false).Authenticate())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicles", nil))

		assert.True(t, *called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token is rejected even when optional", func(t *testing.T) {
		r, called := newRouter(NewAuthMiddleware(authService, false).Authenticate())

		req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.False(t, *called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skip auth path", func(t *testing.T) {
		r, called := newRouter(NewAuthMiddleware(authService, true).Authenticate())

		for _, path := range []string{"/auth/login", "/test"} {
			*called = false
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
			assert.True(t, *called, path)
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	authService := newAuthService(t)

	tests := []struct {
		name     string
		role     models.Role
		action   string
		expected int
	}{
		{"admin manages users", models.RoleAdmin, "manage_users", http.StatusOK},
		{"manager cannot manage users", models.RoleManager, "manage_users", http.StatusForbidden},
		{"driver accepts load", models.RoleDriver, "accept_load", http.StatusOK},
		{"driver cannot manage vehicles", models.RoleDriver, "manage_vehicles", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := authService.GenerateToken("U1", "a@example.com", tt.role)
			require.NoError(t, err)

			m := NewAuthMiddleware(authService, true)
			r, called := newRouter(m.Authenticate(), m.RequirePermission(tt.action))

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
			assert.Equal(t, tt.expected == http.StatusOK, *called)
		})
	}

	t.Run("anonymous passes when optional", func(t *testing.T) {
		m := NewAuthMiddleware(authService, false)
		r, called := newRouter(m.Authenticate(), m.RequirePermission("manage_users"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.True(t, *called)
	})
}

func TestGetClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetClaims(c)
	assert.False(t, ok)

	c.Set(ClaimsKey, &models.Claims{UserID: "U1", Role: models.RoleDriver})
	claims, ok := GetClaims(c)
	assert.True(t, ok)
	assert.Equal(t, "U1", claims.UserID)

	c.Set(ClaimsKey, "not claims")
	_, ok = GetClaims(c)
	assert.False(t, ok)
}
