package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	allowed   bool
	remaining int
	err       error
	calls     int
}

func (s *stubLimiter) Allow(userID string) (bool, int, error) {
	s.calls++
	return s.allowed, s.remaining, s.err
}

func setupLimitRouter(limiter *stubLimiter, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/complaints", func(c *gin.Context) {
		c.Set("user_id", "user1")
		c.Set("role", role)
	}, DailyLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func TestDailyLimitAllows(t *testing.T) {
	limiter := &stubLimiter{allowed: true, remaining: 4}
	router := setupLimitRouter(limiter, "citizen")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/complaints", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestDailyLimitBlocks(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	router := setupLimitRouter(limiter, "citizen")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/complaints", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestDailyLimitSkipsOfficials(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	router := setupLimitRouter(limiter, "official")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/complaints", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Zero(t, limiter.calls)
}

func TestDailyLimitFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	router := setupLimitRouter(limiter, "citizen")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/complaints", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Rate limiter unavailable", w.Header().Get("X-RateLimit-Error"))
}
