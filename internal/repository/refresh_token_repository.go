package repository

import (
	"context"
	"time"

	"shopapi/internal/domain/model"
)

// リフレッシュトークン台帳の保存・取得・削除。
// 削除系は削除件数を返す（0件＝既に無い）。
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error)
	DeleteAllByCustomerID(ctx context.Context, customerID int64) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
