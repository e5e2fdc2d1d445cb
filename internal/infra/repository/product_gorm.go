package repository

import (
	"context"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type productGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) repo.ProductRepository {
	return &productGormRepository{db: db}
}

// 検索条件/価格帯/ページング付きで返す。件数はページングなしの総数。
func (r *productGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	products := []model.Product{}
	var total int64

	//Countの後に同じ*gorm.DBを使い回さないよう毎回組み立てる
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&model.Product{})

		if name := strings.TrimSpace(q.Name); name != "" {
			tx = tx.Where("products.name ILIKE ?", "%"+escapeLike(name)+"%")
		}
		if category := strings.TrimSpace(q.Category); category != "" {
			tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.name = ?", strings.ToUpper(category))
		}
		if brand := strings.TrimSpace(q.Brand); brand != "" {
			tx = tx.Joins("JOIN brands ON brands.id = products.brand_id").
				Where("brands.name ILIKE ?", escapeLike(brand))
		}

		//価格帯
		if q.MinPrice != nil {
			tx = tx.Where("products.price >= ?", *q.MinPrice)
		}
		if q.MaxPrice != nil {
			tx = tx.Where("products.price <= ?", *q.MaxPrice)
		}
		return tx
	}

	//total（件数）
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	offset := (q.Page - 1) * q.PageSize
	err := filtered().
		Preload("Category").
		Preload("Brand").
		Order("products.id asc").
		Offset(offset).
		Limit(q.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return products, total, nil
}

// LIKEのワイルドカードを文字として扱う（postgresの既定エスケープは\）
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// IDで商品を取得（カテゴリ・ブランド付き）
func (r *productGormRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Where("products.id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// 商品の作成。存在しないカテゴリ/ブランドはErrForeignKey
func (r *productGormRepository) Create(ctx context.Context, p *model.Product) error {
	return translateError(r.db.WithContext(ctx).Omit("Category", "Brand").Create(p).Error)
}

// 商品の部分更新
func (r *productGormRepository) Update(ctx context.Context, id int64, upd repo.ProductUpdate) (*model.Product, error) {
	cols := map[string]interface{}{}
	if upd.Name != nil {
		cols["name"] = *upd.Name
	}
	if upd.ImageURL != nil {
		cols["image_url"] = *upd.ImageURL
	}
	if upd.Description != nil {
		cols["description"] = *upd.Description
	}
	if upd.Weight != nil {
		cols["weight"] = *upd.Weight
	}
	if upd.Price != nil {
		cols["price"] = *upd.Price
	}
	if upd.StockQuantity != nil {
		cols["stock_quantity"] = *upd.StockQuantity
	}
	if upd.CategoryID != nil {
		cols["category_id"] = *upd.CategoryID
	}
	if upd.BrandID != nil {
		cols["brand_id"] = *upd.BrandID
	}

	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 商品削除
func (r *productGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
