package token_cleanup

import (
	"context"
	"time"

	"tracker/pkg/logger"
)

type Service interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// TokenCleanup удаляет просроченные токены отзыва и погашенные коды подтверждения.
type TokenCleanup struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewTokenCleanup(log logger.Logger, service Service, interval time.Duration) *TokenCleanup {
	return &TokenCleanup{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (t *TokenCleanup) Interval() time.Duration {
	return t.interval
}

func (t *TokenCleanup) Run(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, t.interval)
	defer cancel()

	rowsAffected, err := t.service.CleanupExpired(ctxWithTimeout)

	if rowsAffected > 0 {
		t.log.With(
			logger.NewField("removed_tokens", rowsAffected),
		).Info("token cleanup")
	}

	return err
}

func (t *TokenCleanup) Name() string {
	return "token_cleanup"
}
