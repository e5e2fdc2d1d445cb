package auth

import (
	"context"
	"fmt"
	"strings"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
)

// リクエスト元の情報（監査用）
type RequestMeta struct {
	IP        string
	UserAgent string
}

// JSONで返すトークンの組
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// register/loginで返す顧客の要約
type CustomerSummary struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// register/loginの出力
type AuthOutput struct {
	TokenPair
	User CustomerSummary `json:"user"`
}

func toSummary(c *model.Customer) CustomerSummary {
	return CustomerSummary{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}

// セッション系usecaseの共通部品（発行・監査・メトリクス）
type Session struct {
	codec   TokenCodec
	clock   Clock
	audit   *AuditRecorder
	metrics SessionMetrics
}

// DI
func NewSession(codec TokenCodec, clock Clock, audit *AuditRecorder, metrics SessionMetrics) *Session {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Session{codec: codec, clock: clock, audit: audit, metrics: metrics}
}

// issuePairはaccess+refreshを発行し、refreshを台帳に保存する
func (s *Session) issuePair(ctx context.Context, tokens repository.RefreshTokenRepository, c *model.Customer) (TokenPair, error) {
	access, _, err := s.codec.IssueAccessToken(c.ID, c.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.issueRefresh(ctx, tokens, c.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// 台帳には毎回新しい行を入れる（上書きしない）
func (s *Session) issueRefresh(ctx context.Context, tokens repository.RefreshTokenRepository, customerID int64) (string, error) {
	refresh, exp, err := s.codec.IssueRefreshToken(customerID)
	if err != nil {
		return "", err
	}

	rec := &model.RefreshToken{
		TokenHash:  HashToken(refresh),
		CustomerID: customerID,
		ExpiresAt:  exp,
	}
	if err := tokens.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("save refresh token: %w", err)
	}

	s.metrics.TokenIssued()
	return refresh, nil
}

// emailは小文字・前後空白なしで扱う
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
