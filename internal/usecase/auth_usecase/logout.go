package auth

import (
	"context"
	"errors"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

type LogoutInput struct {
	RefreshToken string
	Meta         RequestMeta
}

// LogoutUsecaseは提示されたrefresh tokenを台帳から消す。
// 既に無いトークンでも成功扱い（冪等）。
type LogoutUsecase struct {
	tokens  repository.RefreshTokenRepository
	session *Session
}

// DI
func NewLogoutUsecase(tokens repository.RefreshTokenRepository, session *Session) *LogoutUsecase {
	return &LogoutUsecase{tokens: tokens, session: session}
}

func (u *LogoutUsecase) Execute(ctx context.Context, in LogoutInput) error {
	if in.RefreshToken == "" {
		return usecase.Validation("refreshToken is required")
	}
	hash := HashToken(in.RefreshToken)

	rec, err := u.tokens.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return usecase.Internal(err)
	}

	n, err := u.tokens.DeleteByTokenHash(ctx, hash)
	if err != nil {
		return usecase.Internal(err)
	}

	u.session.metrics.TokensRevoked(n)
	u.session.audit.Record(ctx, model.AuditActionLogout, &rec.CustomerID, model.AuditReasonNone, in.Meta)
	return nil
}

// LogoutAllUsecaseは認証中の顧客のrefresh tokenを全部消す
type LogoutAllUsecase struct {
	tokens  repository.RefreshTokenRepository
	session *Session
}

// DI
func NewLogoutAllUsecase(tokens repository.RefreshTokenRepository, session *Session) *LogoutAllUsecase {
	return &LogoutAllUsecase{tokens: tokens, session: session}
}

func (u *LogoutAllUsecase) Execute(ctx context.Context, customerID int64, meta RequestMeta) (int64, error) {
	if customerID <= 0 {
		return 0, usecase.Unauthorized("unauthorized")
	}

	n, err := u.tokens.DeleteAllByCustomerID(ctx, customerID)
	if err != nil {
		return 0, usecase.Internal(err)
	}

	u.session.metrics.TokensRevoked(n)
	u.session.audit.Record(ctx, model.AuditActionLogoutAll, &customerID, model.AuditReasonNone, meta)
	return n, nil
}
