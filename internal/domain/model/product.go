package model

import "time"

type Product struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	SKU         string   `gorm:"column:sku;type:varchar(32);not null;uniqueIndex" json:"sku"`
	ImageURL    string   `gorm:"type:text" json:"image_url"`
	Description string   `gorm:"type:text" json:"description"`
	Weight      *float64 `json:"weight"`

	Price         float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	StockQuantity int64   `gorm:"not null;default:0" json:"stock_quantity"`

	CategoryID int64     `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	BrandID    int64     `gorm:"not null;index" json:"brand_id"`
	Brand      *Brand    `gorm:"constraint:OnDelete:RESTRICT" json:"brand,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
