package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newLimitedEcho(rl *RateLimiter) *echo.Echo {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, rl.RateLimit())
	return e
}

func doLogin(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// =====
// RateLimiter
// =====

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2)
	rl.now = func() time.Time { return now }
	e := newLimitedEcho(rl)

	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1").Code)

	rec := doLogin(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too many requests")

	// 別IPは影響を受けない
	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.2").Code)

	// 30秒たてば1回分回復している
	now = now.Add(31 * time.Second)
	assert.Equal(t, http.StatusOK, doLogin(e, "10.0.0.1").Code)
}

func TestRateLimit_CleanupDropsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5)
	rl.now = func() time.Time { return now }
	e := newLimitedEcho(rl)

	doLogin(e, "10.0.0.1")
	now = now.Add(2 * time.Minute)
	doLogin(e, "10.0.0.2")
	assert.Equal(t, 2, rl.size())

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	assert.Equal(t, 1, rl.size())
}
