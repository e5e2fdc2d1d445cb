package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// プロフィール更新。nilの項目は変更しない。Clear*はその列をNULLにする
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string

	ClearPhoneNumber bool
	ClearAddress     bool
}

// IsEmptyは変更項目がないか
func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.PhoneNumber == nil && u.Address == nil &&
		!u.ClearPhoneNumber && !u.ClearAddress
}

// 顧客（認証情報）の保存・取得を約束
type CustomerRepository interface {
	//新規作成。email重複はErrDuplicate
	Create(ctx context.Context, c *model.Customer) error
	//IDで1件。無ければErrNotFound
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	//emailで1件（大文字小文字を区別しない）。無ければErrNotFound
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	//プロフィールを部分更新して更新後を返す
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*model.Customer, error)
}
