package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	visitorIdleTTL  = 3 * time.Minute
	cleanupInterval = time.Minute
)

// IPごとのトークンバケット
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex

	limit rate.Limit
	burst int
	now   func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// DI
// perMinuteは1分あたりの許可回数。バーストも同じ数にする。
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

// RunCleanupは放置されたIPを定期的に消す。ctxが終わると止まる。
func (rl *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// IPアドレスベースの制限
			ip := c.RealIP()

			ok, retryAfter := rl.allow(ip)
			if !ok {
				c.Response().Header().Set("Retry-After", itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":      "error",
					"message":     "too many requests, please try again later",
					"retry_after": retryAfter,
				})
			}

			return next(c)
		}
	}
}

// allowは許可するかと、拒否時の待ち秒数を返す
func (rl *RateLimiter) allow(ip string) (bool, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		return true, 0
	}

	// 次回許可されるまでの時間（実際には使わないのでキャンセル）
	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 60
	}
	delay := r.DelayFrom(now)
	r.CancelAt(now)

	return false, int(math.Ceil(delay.Seconds()))
}

func (rl *RateLimiter) cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.visitors)
}
