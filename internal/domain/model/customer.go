package model

import "time"

// 顧客＝ログインできるアカウント
type Customer struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`

	//パスワード未設定のアカウントはnil（パスワードログイン不可）
	PasswordHash *string `gorm:"column:password_hash" json:"-"`

	FirstName   string  `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string  `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber *string `gorm:"type:varchar(30)" json:"phone_number"`
	Address     *string `gorm:"type:text" json:"address"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// HasPasswordはパスワードログインできるか
func (c *Customer) HasPassword() bool {
	return c.PasswordHash != nil && *c.PasswordHash != ""
}
