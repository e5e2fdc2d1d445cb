package auth

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

// AuditRecorderはセッションの遷移を監査ログに残す。
// 書き込み失敗はログに出すだけでリクエストは失敗させない。
type AuditRecorder struct {
	repo  repository.AuditLogRepository
	clock Clock
	log   *slog.Logger
}

// DI
func NewAuditRecorder(repo repository.AuditLogRepository, clock Clock, log *slog.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, clock: clock, log: log}
}

func (a *AuditRecorder) Record(ctx context.Context, action model.AuditAction, customerID *int64, reason model.AuditReason, meta RequestMeta) {
	if a == nil {
		return
	}

	entry := model.AuditLog{
		CustomerID: customerID,
		Action:     action,
		Reason:     reason,
		IP:         meta.IP,
		UserAgent:  truncate(meta.UserAgent, 255),
		CreatedAt:  a.clock.Now(),
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.log.WarnContext(ctx, "audit log write failed",
			"action", action,
			"reason", reason,
			"error", err,
		)
	}
}

// 最大nバイト。マルチバイト文字の途中では切らない
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// 自分の監査ログ一覧
type ListAuditInput struct {
	CustomerID int64
	Limit      int
	Offset     int
}

type ListAuditUsecase struct {
	repo repository.AuditLogRepository
}

// DI
func NewListAuditUsecase(repo repository.AuditLogRepository) *ListAuditUsecase {
	return &ListAuditUsecase{repo: repo}
}

func (u *ListAuditUsecase) Execute(ctx context.Context, in ListAuditInput) ([]model.AuditLog, error) {
	if in.CustomerID <= 0 {
		return nil, usecase.Unauthorized("unauthorized")
	}
	if in.Limit < 0 || in.Limit > 200 {
		return nil, usecase.Validation("limit must be between 1 and 200")
	}
	if in.Offset < 0 {
		return nil, usecase.Validation("offset must be >= 0")
	}

	id := in.CustomerID
	logs, err := u.repo.List(ctx, repository.AuditLogFilter{
		CustomerID: &id,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, usecase.Internal(err)
	}
	return logs, nil
}
