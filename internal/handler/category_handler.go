package handler

import (
	"context"
	"net/http"

	"shopapi/internal/domain/model"

	"github.com/labstack/echo/v4"
)

type categoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Rename(ctx context.Context, id int64, name string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// カテゴリ・ブランド共通の入力
type nameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

// /categories のAPI
type CategoryHandler struct {
	uc categoryService
}

// DI
func NewCategoryHandler(uc categoryService) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, authJWT echo.MiddlewareFunc) {
	e.GET("/categories", h.list)
	e.GET("/categories/:id", h.detail)

	e.POST("/categories", h.create, authJWT)
	e.PUT("/categories/:id", h.rename, authJWT)
	e.DELETE("/categories/:id", h.delete, authJWT)
}

func (h *CategoryHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cat, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cat, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) rename(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cat, err := h.uc.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
