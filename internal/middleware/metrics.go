package middleware

import (
	"strconv"
	"time"

	"shopapi/internal/observability/metrics"

	"github.com/labstack/echo/v4"
)

// HTTPリクエストの件数と処理時間を記録する。
// routeはルート定義（/products/:id）を使う。実パスだとラベルが爆発する。
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			err := next(c)
			if err != nil {
				// ステータスを確定させるためここでエラーハンドラを通す
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := itoa(c.Response().Status)

			m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
