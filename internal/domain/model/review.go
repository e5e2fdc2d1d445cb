package model

import "time"

// 商品レビュー。評価は1〜5
type Review struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64     `gorm:"not null;index" json:"product_id"`
	Product    *Product  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Rating  int     `gorm:"type:smallint;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment *string `gorm:"type:varchar(500)" json:"comment"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
