package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware tags every request with an X-Request-ID and logs a
// one-line summary after the handler runs
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		// The auth middleware populates user_email once the token is verified
		user := c.GetString("user_email")
		if user == "" {
			user = "-"
		}

		log.Printf("[%s] %s | %d | %v | %s | %s | %s",
			requestID[:8],
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			user,
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", requestID[:8], e.Err)
		}
	}
}
