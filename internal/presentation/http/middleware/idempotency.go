package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's key
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL bounds how long a stored response can be replayed
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds the dependencies for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func idempotencyUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func recordIdempotentResponse(c *gin.Context, repo repository.IdempotencyRepository, key string, userID uuid.UUID, body string) {
	ikey := &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     c.Request.Method + " " + c.FullPath(),
		ResponseCode: c.Writer.Status(),
		ResponseBody: body,
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	}
	_ = repo.Create(c.Request.Context(), ikey)
}

// Idempotency replays the stored response when a write arrives with a key
// that was already processed. Requests without a key pass through untouched.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := idempotencyUserID(c)
		if !ok {
			c.Next()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		recordIdempotentResponse(c, config.Repo, key, userID, blw.body.String())
	}
}

// IdempotencyRequired rejects POSTs that arrive without a key. Used on the
// transaction endpoint, where a retried submit must never post twice.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for this request",
			})
			c.Abort()
			return
		}

		userID, ok := idempotencyUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			c.Abort()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			c.Abort()
			return
		}
		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			var cached map[string]interface{}
			if err := json.Unmarshal([]byte(existing.ResponseBody), &cached); err == nil {
				c.JSON(existing.ResponseCode, cached)
			} else {
				c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			}
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are worth replaying
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			recordIdempotentResponse(c, config.Repo, key, userID, blw.body.String())
		}
	}
}
