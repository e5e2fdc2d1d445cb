package repository

import (
	"context"

	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	customers     repo.CustomerRepository
	refreshTokens repo.RefreshTokenRepository
}

func (r *txReposGorm) Customers() repo.CustomerRepository         { return r.customers }
func (r *txReposGorm) RefreshTokens() repo.RefreshTokenRepository { return r.refreshTokens }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			customers:     NewCustomerGormRepository(tx),
			refreshTokens: NewRefreshTokenGormRepository(tx),
		}
		return fn(r)
	})
}
