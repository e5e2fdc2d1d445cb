package model

import "time"

// 発行済みrefresh tokenの台帳。
// 行がある間だけ有効。ローテーション・ログアウトで削除し、更新はしない。
type RefreshToken struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//署名済みトークンのSHA-256(hex)。平文は保存しない
	TokenHash string `gorm:"type:char(64);not null;uniqueIndex" json:"-"`

	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// IsExpiredはnow時点で期限切れか
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
