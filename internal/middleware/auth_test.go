package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confportal-backend/internal/auth"
	"confportal-backend/internal/config"
	"confportal-backend/internal/models"
)

func newTestRouter(jwtManager *auth.JWTManager, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(jwtManager)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func issueToken(t *testing.T, jwtManager *auth.JWTManager, role string) string {
	t.Helper()
	token, err := jwtManager.GenerateToken(&models.User{ID: uuid.New(), Role: role})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiry: "1h"},
	})
	router := newTestRouter(jwtManager)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"malformed token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + issueToken(t, jwtManager, "author"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRoleGuards(t *testing.T) {
	jwtManager := auth.NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiry: "1h"},
	})

	tests := []struct {
		name  string
		guard gin.HandlerFunc
		role  string
		want  int
	}{
		{"admin passes AdminOnly", AdminOnly(), "admin", http.StatusOK},
		{"author blocked by AdminOnly", AdminOnly(), "author", http.StatusForbidden},
		{"reviewer passes ReviewerOrAdmin", ReviewerOrAdmin(), "reviewer", http.StatusOK},
		{"admin passes ReviewerOrAdmin", ReviewerOrAdmin(), "admin", http.StatusOK},
		{"author blocked by ReviewerOrAdmin", ReviewerOrAdmin(), "author", http.StatusForbidden},
		{"author passes AuthorOrAdmin", AuthorOrAdmin(), "author", http.StatusOK},
		{"reviewer blocked by AuthorOrAdmin", AuthorOrAdmin(), "reviewer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(jwtManager, tt.guard)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtManager, tt.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
