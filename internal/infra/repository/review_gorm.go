package repository

import (
	"context"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type reviewGormRepository struct {
	db *gorm.DB
}

// DI
func NewReviewGormRepository(db *gorm.DB) repo.ReviewRepository {
	return &reviewGormRepository{db: db}
}

// 商品・投稿者・評価の範囲で絞り込み、新しい順に返す
func (r *reviewGormRepository) List(ctx context.Context, q repo.ReviewListQuery) ([]model.Review, int64, error) {
	reviews := []model.Review{}
	var total int64

	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&model.Review{})

		if q.ProductID != nil {
			tx = tx.Where("product_id = ?", *q.ProductID)
		}
		if q.CustomerID != nil {
			tx = tx.Where("customer_id = ?", *q.CustomerID)
		}
		if q.MinRating != nil {
			tx = tx.Where("rating >= ?", *q.MinRating)
		}
		if q.MaxRating != nil {
			tx = tx.Where("rating <= ?", *q.MaxRating)
		}
		return tx
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	offset := (q.Page - 1) * q.PageSize
	err := filtered().
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(q.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return reviews, total, nil
}

func (r *reviewGormRepository) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rv).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &rv, nil
}

func (r *reviewGormRepository) Create(ctx context.Context, rv *model.Review) error {
	return translateError(r.db.WithContext(ctx).Omit("Product", "Customer").Create(rv).Error)
}

// レビューの部分更新
func (r *reviewGormRepository) Update(ctx context.Context, id int64, upd repo.ReviewUpdate) (*model.Review, error) {
	cols := map[string]interface{}{}
	if upd.Rating != nil {
		cols["rating"] = *upd.Rating
	}
	if upd.Comment != nil {
		cols["comment"] = *upd.Comment
	} else if upd.ClearComment {
		cols["comment"] = nil
	}

	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *reviewGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
