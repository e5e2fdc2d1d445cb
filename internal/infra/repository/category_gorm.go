package repository

import (
	"context"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type categoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

func (r *categoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, translateError(err)
	}
	return categories, nil
}

func (r *categoryGormRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// 同名はErrDuplicate
func (r *categoryGormRepository) Create(ctx context.Context, c *model.Category) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoryGormRepository) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 商品から参照されているとErrForeignKey
func (r *categoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
