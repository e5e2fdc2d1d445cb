package repository

import (
	"context"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type refreshTokenGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewRefreshTokenGormRepository(db *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: db}
}

// リフレッシュトークンを台帳に保存
func (r *refreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	//タイムアウトやキャンセルをDB処理に伝える
	return translateError(r.db.WithContext(ctx).Create(token).Error)
}

// token_hashで1件検索します。
func (r *refreshTokenGormRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var token model.RefreshToken

	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, translateError(err)
	}

	return &token, nil
}

// token_hashの行を削除して件数を返す。
// ローテーションでは「1件消せた人だけが勝ち」になる。
func (r *refreshTokenGormRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.RefreshToken{})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

// 指定顧客のリフレッシュトークンを全削除します。
func (r *refreshTokenGormRepository) DeleteAllByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.RefreshToken{})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

// 期限切れをまとめて削除（掃除ジョブ用）
func (r *refreshTokenGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RefreshToken{})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}
