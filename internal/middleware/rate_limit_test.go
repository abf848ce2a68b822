package middleware

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilRateLimiterPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var limiter *RateLimiter
	router := gin.New()
	router.POST("/write", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := perform(router, http.MethodPost, "/write")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestNewWriteRateLimiterConfig(t *testing.T) {
	rl := NewWriteRateLimiter(nil, 30)
	assert.Equal(t, 30, rl.config.Limit)
	assert.Equal(t, "rate_limit:writes", rl.config.KeyPrefix)
}

func TestRateLimitErrorEnvelope(t *testing.T) {
	payload, err := json.Marshal(Envelope(rateLimitError(30, time.Minute)))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RATE_LIMITED", errObj["code"])
	assert.Equal(t, "rate limit of 30 requests per 1m0s exceeded", errObj["message"])
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails)
}
