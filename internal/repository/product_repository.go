package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page     int
	PageSize int
	Name     string // 部分一致
	Category string // カテゴリ名
	Brand    string // ブランド名
	MinPrice *float64
	MaxPrice *float64
}

// 部分更新。nilは変更しない
type ProductUpdate struct {
	Name          *string
	ImageURL      *string
	Description   *string
	Weight        *float64
	Price         *float64
	StockQuantity *int64
	CategoryID    *int64
	BrandID       *int64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id int64, upd ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// カテゴリの永続化
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Rename(ctx context.Context, id int64, name string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ブランドの永続化
type BrandRepository interface {
	List(ctx context.Context) ([]model.Brand, error)
	FindByID(ctx context.Context, id int64) (*model.Brand, error)
	Create(ctx context.Context, b *model.Brand) error
	Rename(ctx context.Context, id int64, name string) (*model.Brand, error)
	Delete(ctx context.Context, id int64) error
}
