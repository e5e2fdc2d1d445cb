package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

const (
	categoryNameMin = 2
	categoryNameMax = 50
	brandNameMax    = 50
)

// カテゴリ名は前後空白を除いて大文字
func normalizeCategoryName(name string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if l := utf8.RuneCountInString(n); l < categoryNameMin || l > categoryNameMax {
		return "", ValidationFields("invalid category", map[string]string{
			"name": "name must be between 2 and 50 characters",
		})
	}
	return n, nil
}

func normalizeBrandName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if l := utf8.RuneCountInString(n); l < 1 || l > brandNameMax {
		return "", ValidationFields("invalid brand", map[string]string{
			"name": "name must be between 1 and 50 characters",
		})
	}
	return n, nil
}

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

// DI
func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (*model.Category, error) {
	if id <= 0 {
		return nil, Validation("invalid category id")
	}
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "category", "")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (*model.Category, error) {
	n, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	c := &model.Category{Name: n}
	if err := u.categories.Create(ctx, c); err != nil {
		return nil, mapRepoError(err, "category", "")
	}
	return c, nil
}

func (u *CategoryUsecase) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	if id <= 0 {
		return nil, Validation("invalid category id")
	}
	n, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	c, err := u.categories.Rename(ctx, id, n)
	if err != nil {
		return nil, mapRepoError(err, "category", "")
	}
	return c, nil
}

// 商品から参照されているカテゴリは消せない（400）
func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return Validation("invalid category id")
	}
	if err := u.categories.Delete(ctx, id); err != nil {
		return mapRepoError(err, "category", "category is still referenced by products")
	}
	return nil
}

type BrandUsecase struct {
	brands repo.BrandRepository
}

// DI
func NewBrandUsecase(brands repo.BrandRepository) *BrandUsecase {
	return &BrandUsecase{brands: brands}
}

func (u *BrandUsecase) List(ctx context.Context) ([]model.Brand, error) {
	items, err := u.brands.List(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (u *BrandUsecase) Get(ctx context.Context, id int64) (*model.Brand, error) {
	if id <= 0 {
		return nil, Validation("invalid brand id")
	}
	b, err := u.brands.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "brand", "")
	}
	return b, nil
}

func (u *BrandUsecase) Create(ctx context.Context, name string) (*model.Brand, error) {
	n, err := normalizeBrandName(name)
	if err != nil {
		return nil, err
	}
	b := &model.Brand{Name: n}
	if err := u.brands.Create(ctx, b); err != nil {
		return nil, mapRepoError(err, "brand", "")
	}
	return b, nil
}

func (u *BrandUsecase) Rename(ctx context.Context, id int64, name string) (*model.Brand, error) {
	if id <= 0 {
		return nil, Validation("invalid brand id")
	}
	n, err := normalizeBrandName(name)
	if err != nil {
		return nil, err
	}
	b, err := u.brands.Rename(ctx, id, n)
	if err != nil {
		return nil, mapRepoError(err, "brand", "")
	}
	return b, nil
}

func (u *BrandUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return Validation("invalid brand id")
	}
	if err := u.brands.Delete(ctx, id); err != nil {
		return mapRepoError(err, "brand", "brand is still referenced by products")
	}
	return nil
}
