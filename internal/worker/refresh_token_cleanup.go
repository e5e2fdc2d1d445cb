package worker

import (
	"context"
	"log/slog"
	"time"

	"shopapi/internal/repository"
)

const sweepTimeout = 30 * time.Second

// 掃除件数を数える先
type SweepMetrics interface {
	TokensSwept(n int64)
}

// RefreshTokenCleanerは期限切れのrefresh tokenを定期的に台帳から消す。
// 期限切れの行はrefresh時にも消えるが、使われずに残った分をここで回収する。
type RefreshTokenCleaner struct {
	tokens   repository.RefreshTokenRepository
	interval time.Duration
	metrics  SweepMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// DI
func NewRefreshTokenCleaner(
	tokens repository.RefreshTokenRepository,
	interval time.Duration,
	metrics SweepMetrics,
	logger *slog.Logger,
) *RefreshTokenCleaner {
	return &RefreshTokenCleaner{
		tokens:   tokens,
		interval: interval,
		metrics:  metrics,
		logger:   logger.With("component", "refresh_token_cleaner"),
		now:      time.Now,
	}
}

// Runはctxがキャンセルされるまでブロックする
func (w *RefreshTokenCleaner) Run(ctx context.Context) {
	w.logger.Info("starting refresh token cleaner", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping refresh token cleaner")
			return
		case <-ticker.C:
			_, _ = w.SweepOnce(ctx)
		}
	}
}

// SweepOnceは1回分の掃除。失敗はログに残して次回に回す
func (w *RefreshTokenCleaner) SweepOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	n, err := w.tokens.DeleteExpired(ctx, w.now())
	if err != nil {
		w.logger.Error("failed to delete expired refresh tokens", "error", err)
		return 0, err
	}

	if n > 0 {
		w.logger.Info("deleted expired refresh tokens", "count", n)
		if w.metrics != nil {
			w.metrics.TokensSwept(n)
		}
	}
	return n, nil
}
