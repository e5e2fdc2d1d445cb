package auth

import (
	"context"
	"errors"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

const (
	msgRefreshInvalidOrUsed   = "refresh token invalid or already used"
	msgRefreshExpired         = "refresh token expired"
	msgRefreshInvalid         = "invalid refresh token"
	msgRefreshIdentityMissing = "identity no longer exists"
)

// 条件付き削除で0件だった（別リクエストが先にローテーションした）
var errRotationLost = errors.New("refresh token already consumed")

type RefreshInput struct {
	RefreshToken string
	Meta         RequestMeta
}

// RefreshUsecaseはrefresh tokenのローテーション。
// 提示されたトークンはちょうど1回だけ使え、同時に来ても成功するのは1つだけ。
type RefreshUsecase struct {
	customers repository.CustomerRepository
	tokens    repository.RefreshTokenRepository
	txm       repository.TransactionManager
	session   *Session
}

// DI
func NewRefreshUsecase(
	customers repository.CustomerRepository,
	tokens repository.RefreshTokenRepository,
	txm repository.TransactionManager,
	session *Session,
) *RefreshUsecase {
	return &RefreshUsecase{
		customers: customers,
		tokens:    tokens,
		txm:       txm,
		session:   session,
	}
}

func (u *RefreshUsecase) Execute(ctx context.Context, in RefreshInput) (TokenPair, error) {
	if in.RefreshToken == "" {
		return TokenPair{}, usecase.Validation("refreshToken is required")
	}
	hash := HashToken(in.RefreshToken)

	//台帳に無い＝偽物か使用済み
	rec, err := u.tokens.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, u.reject(ctx, nil, model.AuditReasonNotFound, msgRefreshInvalidOrUsed, in.Meta)
		}
		return TokenPair{}, usecase.Internal(err)
	}

	//期限切れは消してから失敗
	if rec.IsExpired(u.session.clock.Now()) {
		if _, err := u.tokens.DeleteByTokenHash(ctx, hash); err != nil {
			return TokenPair{}, usecase.Internal(err)
		}
		return TokenPair{}, u.reject(ctx, &rec.CustomerID, model.AuditReasonExpired, msgRefreshExpired, in.Meta)
	}

	//署名検証
	claims, err := u.session.codec.Verify(in.RefreshToken, TokenRefresh)
	if err != nil {
		reason := model.AuditReasonMalformed
		if errors.Is(err, ErrExpiredCredential) {
			//exp切れのトークンはもう使えないので台帳からも消す
			reason = model.AuditReasonSignatureExpired
			if _, derr := u.tokens.DeleteByTokenHash(ctx, hash); derr != nil {
				return TokenPair{}, usecase.Internal(derr)
			}
		}
		return TokenPair{}, u.reject(ctx, &rec.CustomerID, reason, msgRefreshInvalid, in.Meta)
	}
	if claims.CustomerID != rec.CustomerID {
		return TokenPair{}, u.reject(ctx, &rec.CustomerID, model.AuditReasonMalformed, msgRefreshInvalid, in.Meta)
	}

	//顧客を引き直す
	customer, err := u.customers.FindByID(ctx, claims.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, u.reject(ctx, nil, model.AuditReasonIdentityMissing, msgRefreshIdentityMissing, in.Meta)
		}
		return TokenPair{}, usecase.Internal(err)
	}

	access, _, err := u.session.codec.IssueAccessToken(customer.ID, customer.Email)
	if err != nil {
		return TokenPair{}, usecase.Internal(err)
	}

	//旧トークンの削除（1件消せた場合だけ続行）と新トークンの保存は同じTx
	var refresh string
	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		n, err := r.RefreshTokens().DeleteByTokenHash(ctx, hash)
		if err != nil {
			return err
		}
		if n != 1 {
			return errRotationLost
		}
		refresh, err = u.session.issueRefresh(ctx, r.RefreshTokens(), customer.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, errRotationLost) {
			return TokenPair{}, u.reject(ctx, &customer.ID, model.AuditReasonReplayed, msgRefreshInvalidOrUsed, in.Meta)
		}
		return TokenPair{}, usecase.Internal(err)
	}

	u.session.metrics.TokenRotated()
	u.session.audit.Record(ctx, model.AuditActionRefresh, &customer.ID, model.AuditReasonNone, in.Meta)

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (u *RefreshUsecase) reject(ctx context.Context, customerID *int64, reason model.AuditReason, message string, meta RequestMeta) error {
	u.session.metrics.TokenRejected(reason)
	u.session.audit.Record(ctx, model.AuditActionRefreshRejected, customerID, reason, meta)
	return usecase.Unauthorized(message)
}
