package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	limiter := NewLimiter(10, 2)

	assert.True(t, limiter.Allow("test-key"))
	assert.True(t, limiter.Allow("test-key"))
	assert.False(t, limiter.Allow("test-key"), "third request should be rate limited")
	assert.True(t, limiter.Allow("other-key"), "keys have separate buckets")

	time.Sleep(150 * time.Millisecond)
	assert.True(t, limiter.Allow("test-key"), "token should refill")
}

func TestLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	now = now.Add(time.Minute)
	limiter.Allow("b")

	assert.Equal(t, 1, limiter.CleanupOldLimiters(30*time.Second))
	assert.Equal(t, 1, limiter.Len())
}

func TestMiddleware(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	app := fiber.New()
	app.Use(limiter.Middleware(IPKeyFunc))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
