package model

import "time"

// セッションのどの遷移か
type AuditAction string

const (
	AuditActionRegister        AuditAction = "REGISTER"
	AuditActionLogin           AuditAction = "LOGIN"
	AuditActionLoginFailed     AuditAction = "LOGIN_FAILED"
	AuditActionRefresh         AuditAction = "REFRESH"
	AuditActionRefreshRejected AuditAction = "REFRESH_REJECTED"
	AuditActionLogout          AuditAction = "LOGOUT"
	AuditActionLogoutAll       AuditAction = "LOGOUT_ALL"
)

// 失敗・拒否の理由。外部には出さず監査用にだけ残す。
type AuditReason string

const (
	AuditReasonNone             AuditReason = ""
	AuditReasonUnknownEmail     AuditReason = "unknown_email"
	AuditReasonNoPassword       AuditReason = "no_password"
	AuditReasonBadPassword      AuditReason = "bad_password"
	AuditReasonNotFound         AuditReason = "not_found"
	AuditReasonExpired          AuditReason = "expired"
	AuditReasonSignatureExpired AuditReason = "signature_expired"
	AuditReasonMalformed        AuditReason = "malformed"
	AuditReasonIdentityMissing  AuditReason = "identity_missing"
	AuditReasonReplayed         AuditReason = "replayed"
)

// 監査ログ（認証イベント）。
// 「誰が」「何を」「なぜ失敗したか」「どこから」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//対象の顧客。メール不明のログイン失敗などはnil
	CustomerID *int64 `gorm:"index" json:"customer_id"`

	Action AuditAction `gorm:"type:varchar(30);not null;index" json:"action"`
	Reason AuditReason `gorm:"type:varchar(30)" json:"reason,omitempty"`

	IP        string `gorm:"type:varchar(64)" json:"ip,omitempty"`
	UserAgent string `gorm:"type:varchar(255)" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
