package auth

import (
	"context"
	"errors"
	"strings"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

const msgIdentityNotFound = "identity not found"

// プロフィールのレスポンス
type Profile struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

func toProfile(c *model.Customer) Profile {
	return Profile{
		ID:          c.ID,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
}

// 部分更新の入力。nilは変更しない
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
}

type ProfileUsecase struct {
	customers repository.CustomerRepository
}

// DI
func NewProfileUsecase(customers repository.CustomerRepository) *ProfileUsecase {
	return &ProfileUsecase{customers: customers}
}

// Getはトークンの顧客IDでプロフィールを返す
func (u *ProfileUsecase) Get(ctx context.Context, customerID int64) (Profile, error) {
	if customerID <= 0 {
		return Profile{}, usecase.Unauthorized(msgIdentityNotFound)
	}

	c, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return Profile{}, mapProfileError(err)
	}
	return toProfile(c), nil
}

// Updateは指定された項目だけ書き換える
func (u *ProfileUsecase) Update(ctx context.Context, customerID int64, in UpdateProfileInput) (Profile, error) {
	if customerID <= 0 {
		return Profile{}, usecase.Unauthorized(msgIdentityNotFound)
	}

	upd := repository.ProfileUpdate{
		FirstName:   trimmed(in.FirstName),
		LastName:    trimmed(in.LastName),
		PhoneNumber: trimmed(in.PhoneNumber),
		Address:     trimmed(in.Address),
	}
	// 任意項目の空文字はNULLに戻す
	if upd.PhoneNumber != nil && *upd.PhoneNumber == "" {
		upd.PhoneNumber, upd.ClearPhoneNumber = nil, true
	}
	if upd.Address != nil && *upd.Address == "" {
		upd.Address, upd.ClearAddress = nil, true
	}
	if upd.FirstName != nil && *upd.FirstName == "" {
		return Profile{}, usecase.Validation("first_name must not be empty")
	}
	if upd.LastName != nil && *upd.LastName == "" {
		return Profile{}, usecase.Validation("last_name must not be empty")
	}

	c, err := u.customers.UpdateProfile(ctx, customerID, upd)
	if err != nil {
		return Profile{}, mapProfileError(err)
	}
	return toProfile(c), nil
}

// トークンの顧客が消えている場合は401
func mapProfileError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return usecase.Unauthorized(msgIdentityNotFound)
	}
	return usecase.Internal(err)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// 空白だけの任意項目はnil
func optional(s *string) *string {
	v := trimmed(s)
	if v == nil || *v == "" {
		return nil
	}
	return v
}
