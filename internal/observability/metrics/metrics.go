package metrics

import (
	"shopapi/internal/domain/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metricsはアプリのprometheusメトリクス一式。
// テストでは専用のRegistryを渡す。
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPRequestDuration  *prometheus.HistogramVec

	RefreshTokensIssued   prometheus.Counter
	RefreshTokensRotated  prometheus.Counter
	RefreshTokensRejected *prometheus.CounterVec
	RefreshTokensRevoked  prometheus.Counter
	RefreshTokensSwept    prometheus.Counter
	LoginAttempts         *prometheus.CounterVec
}

// DI
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		RefreshTokensIssued: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refresh_tokens_issued_total",
				Help: "Total number of refresh tokens issued",
			},
		),
		RefreshTokensRotated: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refresh_tokens_rotated_total",
				Help: "Total number of successful refresh token rotations",
			},
		),
		RefreshTokensRejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refresh_tokens_rejected_total",
				Help: "Total number of rejected refresh attempts by reason",
			},
			[]string{"reason"},
		),
		RefreshTokensRevoked: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refresh_tokens_revoked_total",
				Help: "Total number of refresh tokens revoked by login or logout",
			},
		),
		RefreshTokensSwept: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refresh_tokens_swept_total",
				Help: "Total number of expired refresh tokens removed by the sweeper",
			},
		),
		LoginAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
	}
}

// 以下はauth.SessionMetricsの実装

func (m *Metrics) TokenIssued() {
	m.RefreshTokensIssued.Inc()
}

func (m *Metrics) TokenRotated() {
	m.RefreshTokensRotated.Inc()
}

func (m *Metrics) TokenRejected(reason model.AuditReason) {
	m.RefreshTokensRejected.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) TokensRevoked(n int64) {
	if n > 0 {
		m.RefreshTokensRevoked.Add(float64(n))
	}
}

func (m *Metrics) LoginAttempt(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// 掃除ジョブ用
func (m *Metrics) TokensSwept(n int64) {
	if n > 0 {
		m.RefreshTokensSwept.Add(float64(n))
	}
}
