package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicpulse-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwt.JWTUtil) {
	gin.SetMode(gin.TestMode)
	jwtUtil := jwt.NewJWTUtil("test-secret", time.Hour)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtUtil), func(c *gin.Context) {
		actor := ActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"userId":     actor.ID,
			"role":       actor.Role,
			"department": actor.Department,
		})
	})
	return router, jwtUtil
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, jwtUtil := setupAuthRouter(t)

	token, err := jwtUtil.GenerateToken("user123", "official@city.gov", "official", "Sanitation")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user123")
	assert.Contains(t, w.Body.String(), "Sanitation")
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtUtil := jwt.NewJWTUtil("test-secret", time.Hour)

	router := gin.New()
	router.POST("/admin-only", AuthMiddleware(jwtUtil), RequireRoles("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	citizenToken, err := jwtUtil.GenerateToken("u1", "citizen@mail.com", "citizen", "None")
	require.NoError(t, err)
	adminToken, err := jwtUtil.GenerateToken("u2", "admin@city.gov", "admin", "None")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+citizenToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
