package handler

import (
	"context"
	"net/http"
	"strconv"

	"shopapi/internal/domain/model"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type productService interface {
	List(ctx context.Context, in usecase.ListProductsInput) (usecase.ProductListOutput, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, in usecase.UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// 商品作成のリクエスト
type productCreateRequest struct {
	Name          string   `json:"name" validate:"required,notblank,max=255"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url"`
	Description   string   `json:"description" validate:"max=5000"`
	Weight        *float64 `json:"weight" validate:"omitempty,gt=0"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	StockQuantity int64    `json:"stock_quantity" validate:"gte=0"`
	CategoryID    int64    `json:"category_id" validate:"required,gt=0"`
	BrandID       int64    `json:"brand_id" validate:"required,gt=0"`
}

// 商品更新のリクエスト。送られた項目だけ更新
type productUpdateRequest struct {
	Name          *string  `json:"name" validate:"omitempty,notblank,max=255"`
	ImageURL      *string  `json:"image_url" validate:"omitempty,url"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Weight        *float64 `json:"weight" validate:"omitempty,gt=0"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	StockQuantity *int64   `json:"stock_quantity" validate:"omitempty,gte=0"`
	CategoryID    *int64   `json:"category_id" validate:"omitempty,gt=0"`
	BrandID       *int64   `json:"brand_id" validate:"omitempty,gt=0"`
}

// /products のAPI
type ProductHandler struct {
	uc productService
}

// DI
func NewProductHandler(uc productService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 参照は公開、書き込みはbearer必須
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, authJWT echo.MiddlewareFunc) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	e.POST("/products", h.create, authJWT)
	e.PUT("/products/:id", h.update, authJWT)
	e.DELETE("/products/:id", h.delete, authJWT)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}

	// pageSize（default 10）
	pageSize, err := queryInt(c, "pageSize", 10)
	if err != nil {
		return err
	}

	minPrice, err := queryFloat(c, "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := queryFloat(c, "maxPrice")
	if err != nil {
		return err
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:     page,
		PageSize: pageSize,
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		Brand:    c.QueryParam("brand"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req productCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:          req.Name,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		Weight:        req.Weight,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:          req.Name,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		Weight:        req.Weight,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func queryFloat(c echo.Context, key string) (*float64, error) {
	v := c.QueryParam(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, usecase.Validation("invalid " + key)
	}
	return &f, nil
}
