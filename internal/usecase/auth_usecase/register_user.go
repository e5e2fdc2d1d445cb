package auth

import (
	"context"
	"errors"
	"strings"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	Address     *string
	Meta        RequestMeta
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	customers repository.CustomerRepository
	txm       repository.TransactionManager
	hasher    PasswordHasher
	session   *Session
}

// DI
func NewRegisterUserUsecase(
	customers repository.CustomerRepository,
	txm repository.TransactionManager,
	hasher PasswordHasher,
	session *Session,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		customers: customers,
		txm:       txm,
		hasher:    hasher,
		session:   session,
	}
}

// 会員登録実行。顧客とrefresh tokenは同じTxで保存する
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (AuthOutput, error) {
	var out AuthOutput

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return out, usecase.Validation("email and password are required")
	}

	// email重複チェック
	_, err := u.customers.FindByEmail(ctx, email)
	if err == nil {
		return out, usecase.Conflict("email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return out, usecase.Internal(err)
	}

	// パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		// bcryptは72バイトを超える入力を受け付けない
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return out, usecase.ValidationFields("validation failed", map[string]string{
				"password": "password must be at most 72 bytes long",
			})
		}
		return out, usecase.Internal(err)
	}

	customer := &model.Customer{
		Email:        email,
		PasswordHash: &hashed,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  optional(in.PhoneNumber),
		Address:      optional(in.Address),
	}

	var pair TokenPair
	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Customers().Create(ctx, customer); err != nil {
			return err
		}
		var err error
		pair, err = u.session.issuePair(ctx, r.RefreshTokens(), customer)
		return err
	})
	if err != nil {
		// FindByEmailとCreateの間に同じemailが入った場合
		if errors.Is(err, repository.ErrDuplicate) {
			return out, usecase.Conflict("email already registered")
		}
		return out, usecase.Internal(err)
	}

	id := customer.ID
	u.session.audit.Record(ctx, model.AuditActionRegister, &id, model.AuditReasonNone, in.Meta)

	out.TokenPair = pair
	out.User = toSummary(customer)
	return out, nil
}
