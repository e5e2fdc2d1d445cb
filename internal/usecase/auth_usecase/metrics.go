package auth

import "shopapi/internal/domain/model"

// セッション関連の計測。prometheus実装はobservability/metrics
type SessionMetrics interface {
	TokenIssued()
	TokenRotated()
	TokenRejected(reason model.AuditReason)
	TokensRevoked(n int64)
	LoginAttempt(ok bool)
}

type NopMetrics struct{}

func (NopMetrics) TokenIssued()                      {}
func (NopMetrics) TokenRotated()                     {}
func (NopMetrics) TokenRejected(_ model.AuditReason) {}
func (NopMetrics) TokensRevoked(_ int64)             {}
func (NopMetrics) LoginAttempt(_ bool)               {}
