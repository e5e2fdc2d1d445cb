package handler

import (
	"context"
	"net/http"

	"shopapi/internal/domain/model"

	"github.com/labstack/echo/v4"
)

type brandService interface {
	List(ctx context.Context) ([]model.Brand, error)
	Get(ctx context.Context, id int64) (*model.Brand, error)
	Create(ctx context.Context, name string) (*model.Brand, error)
	Rename(ctx context.Context, id int64, name string) (*model.Brand, error)
	Delete(ctx context.Context, id int64) error
}

// /brands のAPI
type BrandHandler struct {
	uc brandService
}

// DI
func NewBrandHandler(uc brandService) *BrandHandler {
	return &BrandHandler{uc: uc}
}

func (h *BrandHandler) RegisterRoutes(e *echo.Echo, authJWT echo.MiddlewareFunc) {
	e.GET("/brands", h.list)
	e.GET("/brands/:id", h.detail)

	e.POST("/brands", h.create, authJWT)
	e.PUT("/brands/:id", h.rename, authJWT)
	e.DELETE("/brands/:id", h.delete, authJWT)
}

func (h *BrandHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BrandHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	b, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BrandHandler) create(c echo.Context) error {
	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BrandHandler) rename(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.uc.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BrandHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
