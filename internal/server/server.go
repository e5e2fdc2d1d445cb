package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/handler"
	appmw "shopapi/internal/middleware"
	"shopapi/internal/observability/metrics"
	"shopapi/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	bodyLimit       = "1M"
	shutdownTimeout = 10 * time.Second
)

// Optionsはサーバー生成に必要なもの。Metricsがnilなら計測しない
type Options struct {
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Newは共通ミドルウェアを積んだechoを作る。ルートはRegisterRoutesで足す
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.NewErrorHandler(opts.Logger, opts.Config.IsProduction())

	// 1. Request IDを最初に付ける
	e.Use(middleware.RequestID())

	// 2. 計測（エラーハンドラ後のステータスで数える）
	if opts.Metrics != nil {
		e.Use(appmw.Metrics(opts.Metrics))
	}

	// 3. アクセスログ
	e.Use(requestLogger(opts.Logger))

	// 4. panicはerrorにしてログに流す
	e.Use(middleware.Recover())

	// 5. セキュリティヘッダ
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// 6. 大きすぎるbodyは読まない
	e.Use(middleware.BodyLimit(bodyLimit))

	if opts.Metrics != nil && opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return e
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error == nil {
				log.InfoContext(c.Request().Context(), "request completed", attrs...)
			} else {
				attrs = append(attrs, "error", v.Error.Error())
				log.WarnContext(c.Request().Context(), "request failed", attrs...)
			}
			return nil
		},
	})
}

// Startはctxが終わるまでサーバーを動かし、終わったらgracefulに止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited properly")
	return nil
}

// Addrは":8080"形式にそろえる
func Addr(port string) string {
	if port == "" {
		port = "8080"
	}
	if host, p, err := net.SplitHostPort(port); err == nil {
		return net.JoinHostPort(host, p)
	}
	return ":" + port
}
