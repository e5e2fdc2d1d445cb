package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

const (
	minRating        = 1
	maxRating        = 5
	maxCommentLength = 500
)

const msgNotReviewAuthor = "you can only modify your own reviews"

type ReviewUsecase struct {
	reviews repo.ReviewRepository
}

// DI
func NewReviewUsecase(reviews repo.ReviewRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews}
}

// GET /reviewsの入力DTO
type ListReviewsInput struct {
	Page       int
	PageSize   int
	ProductID  *int64
	CustomerID *int64
	MinRating  *int
	MaxRating  *int
}

type ReviewListOutput struct {
	Items      []model.Review `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

func (u *ReviewUsecase) List(ctx context.Context, in ListReviewsInput) (ReviewListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = 10
	}
	if in.Page < 1 {
		return ReviewListOutput{}, Validation("invalid page")
	}
	if in.PageSize < 1 || in.PageSize > 100 {
		return ReviewListOutput{}, Validation("invalid pageSize")
	}
	if (in.ProductID != nil && *in.ProductID <= 0) || (in.CustomerID != nil && *in.CustomerID <= 0) {
		return ReviewListOutput{}, Validation("productId and customerId must be positive")
	}
	if in.MinRating != nil && !validRating(*in.MinRating) {
		return ReviewListOutput{}, Validation("minRating must be between 1 and 5")
	}
	if in.MaxRating != nil && !validRating(*in.MaxRating) {
		return ReviewListOutput{}, Validation("maxRating must be between 1 and 5")
	}
	if in.MinRating != nil && in.MaxRating != nil && *in.MinRating > *in.MaxRating {
		return ReviewListOutput{}, Validation("minRating must be <= maxRating")
	}

	items, total, err := u.reviews.List(ctx, repo.ReviewListQuery{
		Page:       in.Page,
		PageSize:   in.PageSize,
		ProductID:  in.ProductID,
		CustomerID: in.CustomerID,
		MinRating:  in.MinRating,
		MaxRating:  in.MaxRating,
	})
	if err != nil {
		return ReviewListOutput{}, Internal(err)
	}

	pages := (total + int64(in.PageSize) - 1) / int64(in.PageSize)
	return ReviewListOutput{
		Items: items,
		Pagination: Pagination{
			Page:       in.Page,
			PageSize:   in.PageSize,
			Total:      total,
			TotalPages: pages,
		},
	}, nil
}

func (u *ReviewUsecase) Get(ctx context.Context, id int64) (*model.Review, error) {
	if id <= 0 {
		return nil, Validation("invalid review id")
	}
	r, err := u.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "review", "")
	}
	return r, nil
}

// 投稿者はトークンの顧客
type CreateReviewInput struct {
	CustomerID int64
	ProductID  int64
	Rating     int
	Comment    *string
}

func (u *ReviewUsecase) Create(ctx context.Context, in CreateReviewInput) (*model.Review, error) {
	if in.CustomerID <= 0 {
		return nil, Unauthorized("unauthorized")
	}
	if in.ProductID <= 0 {
		return nil, Validation("product_id must be positive")
	}
	if !validRating(in.Rating) {
		return nil, Validation("rating must be between 1 and 5")
	}
	comment, err := normalizeComment(in.Comment)
	if err != nil {
		return nil, err
	}

	r := &model.Review{
		ProductID:  in.ProductID,
		CustomerID: in.CustomerID,
		Rating:     in.Rating,
		Comment:    comment,
	}
	if err := u.reviews.Create(ctx, r); err != nil {
		return nil, mapRepoError(err, "review", "product does not exist")
	}
	return r, nil
}

// nilは変更しない。空のcommentは削除
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

func (u *ReviewUsecase) Update(ctx context.Context, customerID, id int64, in UpdateReviewInput) (*model.Review, error) {
	if id <= 0 {
		return nil, Validation("invalid review id")
	}
	if in.Rating != nil && !validRating(*in.Rating) {
		return nil, Validation("rating must be between 1 and 5")
	}

	upd := repo.ReviewUpdate{Rating: in.Rating}
	if in.Comment != nil {
		comment, err := normalizeComment(in.Comment)
		if err != nil {
			return nil, err
		}
		upd.Comment = comment
		upd.ClearComment = comment == nil
	}

	if err := u.authorize(ctx, customerID, id); err != nil {
		return nil, err
	}

	r, err := u.reviews.Update(ctx, id, upd)
	if err != nil {
		return nil, mapRepoError(err, "review", "")
	}
	return r, nil
}

func (u *ReviewUsecase) Delete(ctx context.Context, customerID, id int64) error {
	if id <= 0 {
		return Validation("invalid review id")
	}
	if err := u.authorize(ctx, customerID, id); err != nil {
		return err
	}
	if err := u.reviews.Delete(ctx, id); err != nil {
		return mapRepoError(err, "review", "")
	}
	return nil
}

// 書き換えられるのは投稿者だけ
func (u *ReviewUsecase) authorize(ctx context.Context, customerID, id int64) error {
	if customerID <= 0 {
		return Unauthorized("unauthorized")
	}
	r, err := u.reviews.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(err, "review", "")
	}
	if r.CustomerID != customerID {
		return Forbidden(msgNotReviewAuthor)
	}
	return nil
}

func validRating(r int) bool {
	return r >= minRating && r <= maxRating
}

// 前後の空白を落とし、空ならnil
func normalizeComment(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > maxCommentLength {
		return nil, Validation("comment must be at most 500 characters long")
	}
	return &v, nil
}
