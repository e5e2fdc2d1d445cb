package repository

import (
	"context"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type brandGormRepository struct {
	db *gorm.DB
}

// DI
func NewBrandGormRepository(db *gorm.DB) repo.BrandRepository {
	return &brandGormRepository{db: db}
}

func (r *brandGormRepository) List(ctx context.Context) ([]model.Brand, error) {
	brands := []model.Brand{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&brands).Error; err != nil {
		return nil, translateError(err)
	}
	return brands, nil
}

func (r *brandGormRepository) FindByID(ctx context.Context, id int64) (*model.Brand, error) {
	var b model.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

func (r *brandGormRepository) Create(ctx context.Context, b *model.Brand) error {
	return translateError(r.db.WithContext(ctx).Create(b).Error)
}

func (r *brandGormRepository) Rename(ctx context.Context, id int64, name string) (*model.Brand, error) {
	res := r.db.WithContext(ctx).Model(&model.Brand{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *brandGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Brand{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
