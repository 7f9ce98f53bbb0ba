package middleware

import (
	"net/http"
	"strconv"

	"civicpulse-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// DailyLimitMiddleware enforces the per-citizen daily submission cap.
// Officials and admins are exempt. Must run after AuthMiddleware.
func DailyLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "citizen" {
			c.Next()
			return
		}

		userID := c.GetString("user_id")

		allowed, remaining, err := limiter.Allow(userID)
		if err != nil {
			// Never block submissions on limiter failure
			c.Header("X-RateLimit-Error", "Rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Daily complaint limit reached, try again tomorrow",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
