package handler

import (
	"context"
	"net/http"
	"strconv"

	"shopapi/internal/domain/model"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type reviewService interface {
	List(ctx context.Context, in usecase.ListReviewsInput) (usecase.ReviewListOutput, error)
	Get(ctx context.Context, id int64) (*model.Review, error)
	Create(ctx context.Context, in usecase.CreateReviewInput) (*model.Review, error)
	Update(ctx context.Context, customerID, id int64, in usecase.UpdateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, customerID, id int64) error
}

// レビュー投稿。投稿者はトークンから取る
type reviewCreateRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=500"`
}

type reviewUpdateRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`
}

// /reviews のAPI
type ReviewHandler struct {
	uc reviewService
}

// DI
func NewReviewHandler(uc reviewService) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// 参照は公開、投稿・編集・削除はbearer必須
func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, authJWT echo.MiddlewareFunc) {
	e.GET("/reviews", h.list)
	e.GET("/reviews/:id", h.detail)

	e.POST("/reviews", h.create, authJWT)
	e.PATCH("/reviews/:id", h.update, authJWT)
	e.DELETE("/reviews/:id", h.delete, authJWT)
}

func (h *ReviewHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "pageSize", 10)
	if err != nil {
		return err
	}

	productID, err := queryInt64Ptr(c, "productId")
	if err != nil {
		return err
	}
	customerID, err := queryInt64Ptr(c, "customerId")
	if err != nil {
		return err
	}
	minRating, err := queryIntPtr(c, "minRating")
	if err != nil {
		return err
	}
	maxRating, err := queryIntPtr(c, "maxRating")
	if err != nil {
		return err
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListReviewsInput{
		Page:       page,
		PageSize:   pageSize,
		ProductID:  productID,
		CustomerID: customerID,
		MinRating:  minRating,
		MaxRating:  maxRating,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	r, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) create(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	var req reviewCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.uc.Create(c.Request().Context(), usecase.CreateReviewInput{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, r)
}

func (h *ReviewHandler) update(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req reviewUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.uc.Update(c.Request().Context(), customerID, id, usecase.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) delete(c echo.Context) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return usecase.Unauthorized("unauthorized")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), customerID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// 未指定はnil
func queryIntPtr(c echo.Context, key string) (*int, error) {
	v := c.QueryParam(key)
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, usecase.Validation("invalid " + key)
	}
	return &i, nil
}

func queryInt64Ptr(c echo.Context, key string) (*int64, error) {
	v := c.QueryParam(key)
	if v == "" {
		return nil, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, usecase.Validation("invalid " + key)
	}
	return &i, nil
}
