package usecase

import (
	"context"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"github.com/google/uuid"
)

// 画像なしで作成したときの画像
const defaultProductImageURL = "https://placehold.co/300x200"

const msgUnknownCategoryOrBrand = "category or brand does not exist"

// SKUを作る関数（テストで差し替える）
type SKUGenerator func(name string) string

// GenerateSKUは名前の先頭3文字（大文字）+ "-" + UUID先頭8桁（大文字）
func GenerateSKU(name string) string {
	prefix := []rune(strings.TrimSpace(name))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.ToUpper(string(prefix)) + "-" + strings.ToUpper(uuid.NewString()[:8])
}

type ProductUsecase struct {
	products repo.ProductRepository
	sku      SKUGenerator
}

// DI
func NewProductUsecase(products repo.ProductRepository, sku SKUGenerator) *ProductUsecase {
	if sku == nil {
		sku = GenerateSKU
	}
	return &ProductUsecase{products: products, sku: sku}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	PageSize int
	Name     string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type ProductListOutput struct {
	Items      []model.Product `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = 10
	}
	if in.Page < 1 {
		return ProductListOutput{}, Validation("invalid page")
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		return ProductListOutput{}, Validation("invalid pageSize")
	}
	if len(in.Name) > 100 {
		return ProductListOutput{}, Validation("name too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, Validation("minPrice must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, Validation("maxPrice must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, Validation("minPrice must be <= maxPrice")
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		PageSize: in.PageSize,
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Brand:    strings.TrimSpace(in.Brand),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
	if err != nil {
		return ProductListOutput{}, Internal(err)
	}

	pages := (total + int64(in.PageSize) - 1) / int64(in.PageSize)
	return ProductListOutput{
		Items: items,
		Pagination: Pagination{
			Page:       in.Page,
			PageSize:   in.PageSize,
			Total:      total,
			TotalPages: pages,
		},
	}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, Validation("invalid product id")
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "product", "")
	}
	return p, nil
}

type CreateProductInput struct {
	Name          string
	ImageURL      string
	Description   string
	Weight        *float64
	Price         float64
	StockQuantity int64
	CategoryID    int64
	BrandID       int64
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Validation("name required")
	}
	if in.Price <= 0 {
		return nil, Validation("price must be a positive number")
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return nil, Validation("weight must be a positive number")
	}
	if in.StockQuantity < 0 {
		return nil, Validation("stock_quantity cannot be negative")
	}
	if in.CategoryID <= 0 || in.BrandID <= 0 {
		return nil, Validation("category_id and brand_id must be positive")
	}

	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		image = defaultProductImageURL
	}

	p := &model.Product{
		Name:          name,
		SKU:           u.sku(name),
		ImageURL:      image,
		Description:   in.Description,
		Weight:        in.Weight,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
	}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, mapRepoError(err, "product", msgUnknownCategoryOrBrand)
	}

	// カテゴリ・ブランド付きで返す
	created, err := u.products.FindByID(ctx, p.ID)
	if err != nil {
		return nil, mapRepoError(err, "product", "")
	}
	return created, nil
}

type UpdateProductInput struct {
	Name          *string
	ImageURL      *string
	Description   *string
	Weight        *float64
	Price         *float64
	StockQuantity *int64
	CategoryID    *int64
	BrandID       *int64
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput) (*model.Product, error) {
	if id <= 0 {
		return nil, Validation("invalid product id")
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, Validation("name must not be empty")
		}
		in.Name = &n
	}
	if in.Price != nil && *in.Price <= 0 {
		return nil, Validation("price must be a positive number")
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return nil, Validation("weight must be a positive number")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return nil, Validation("stock_quantity cannot be negative")
	}
	if (in.CategoryID != nil && *in.CategoryID <= 0) || (in.BrandID != nil && *in.BrandID <= 0) {
		return nil, Validation("category_id and brand_id must be positive")
	}

	p, err := u.products.Update(ctx, id, repo.ProductUpdate{
		Name:          in.Name,
		ImageURL:      in.ImageURL,
		Description:   in.Description,
		Weight:        in.Weight,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
	})
	if err != nil {
		return nil, mapRepoError(err, "product", msgUnknownCategoryOrBrand)
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return Validation("invalid product id")
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return mapRepoError(err, "product", "")
	}
	return nil
}
