package auth

import (
	"context"
	"errors"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

// メール不明・パスワード未設定・不一致はすべてこの文言にする
const invalidCredentialsMessage = "Invalid credentials"

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
	Meta     RequestMeta
}

type LoginUsecase struct {
	customers repository.CustomerRepository
	txm       repository.TransactionManager
	verifier  PasswordVerifier
	session   *Session
}

func NewLoginUsecase(
	customers repository.CustomerRepository,
	txm repository.TransactionManager,
	verifier PasswordVerifier,
	session *Session,
) *LoginUsecase {
	return &LoginUsecase{
		customers: customers,
		txm:       txm,
		verifier:  verifier,
		session:   session,
	}
}

// ログイン処理を実行する。
// 成功すると以前のrefresh tokenは全部失効する。
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (AuthOutput, error) {
	var out AuthOutput

	//emailで顧客取得
	customer, err := u.customers.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, u.reject(ctx, nil, model.AuditReasonUnknownEmail, in.Meta)
		}
		return out, usecase.Internal(err)
	}

	//パスワード未設定のアカウントはパスワードログイン不可
	if !customer.HasPassword() {
		return out, u.reject(ctx, &customer.ID, model.AuditReasonNoPassword, in.Meta)
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, *customer.PasswordHash); !ok {
		return out, u.reject(ctx, &customer.ID, model.AuditReasonBadPassword, in.Meta)
	}

	var pair TokenPair
	var revoked int64
	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		//以前のセッションは顧客IDでまとめて削除
		n, err := r.RefreshTokens().DeleteAllByCustomerID(ctx, customer.ID)
		if err != nil {
			return err
		}
		revoked = n

		pair, err = u.session.issuePair(ctx, r.RefreshTokens(), customer)
		return err
	})
	if err != nil {
		return out, usecase.Internal(err)
	}

	u.session.metrics.TokensRevoked(revoked)
	u.session.metrics.LoginAttempt(true)
	u.session.audit.Record(ctx, model.AuditActionLogin, &customer.ID, model.AuditReasonNone, in.Meta)

	out.TokenPair = pair
	out.User = toSummary(customer)
	return out, nil
}

func (u *LoginUsecase) reject(ctx context.Context, customerID *int64, reason model.AuditReason, meta RequestMeta) error {
	u.session.metrics.LoginAttempt(false)
	u.session.audit.Record(ctx, model.AuditActionLoginFailed, customerID, reason, meta)
	return usecase.Unauthorized(invalidCredentialsMessage)
}
