package repository

import (
	"context"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type customerGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewCustomerGormRepository(db *gorm.DB) repo.CustomerRepository {
	return &customerGormRepository{db: db}
}

// Create は顧客を新規作成
func (r *customerGormRepository) Create(ctx context.Context, c *model.Customer) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error)
}

// IDで顧客を1件取得
func (r *customerGormRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, translateError(err)
	}

	return &c, nil
}

// emailで顧客を1件取得。保存時に小文字化しているので比較も小文字で行う
func (r *customerGormRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var c model.Customer

	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&c).Error
	if err != nil {
		return nil, translateError(err)
	}

	return &c, nil
}

// プロフィールの部分更新
func (r *customerGormRepository) UpdateProfile(ctx context.Context, id int64, upd repo.ProfileUpdate) (*model.Customer, error) {
	if upd.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	cols := map[string]interface{}{}
	if upd.FirstName != nil {
		cols["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		cols["last_name"] = *upd.LastName
	}
	if upd.PhoneNumber != nil {
		cols["phone_number"] = *upd.PhoneNumber
	} else if upd.ClearPhoneNumber {
		cols["phone_number"] = nil
	}
	if upd.Address != nil {
		cols["address"] = *upd.Address
	} else if upd.ClearAddress {
		cols["address"] = nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}

	return r.FindByID(ctx, id)
}
