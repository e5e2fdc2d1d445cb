package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// レビュー一覧の条件。nilは絞り込まない
type ReviewListQuery struct {
	Page       int
	PageSize   int
	ProductID  *int64
	CustomerID *int64
	MinRating  *int
	MaxRating  *int
}

// 部分更新。ClearCommentはcommentをNULLにする
type ReviewUpdate struct {
	Rating       *int
	Comment      *string
	ClearComment bool
}

// レビューの永続化
type ReviewRepository interface {
	//新しい順。件数はページングなしの総数
	List(ctx context.Context, q ReviewListQuery) ([]model.Review, int64, error)
	FindByID(ctx context.Context, id int64) (*model.Review, error)
	//存在しない商品・顧客はErrForeignKey
	Create(ctx context.Context, r *model.Review) error
	Update(ctx context.Context, id int64, upd ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
}
