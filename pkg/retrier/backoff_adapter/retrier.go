package backoff_adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"tracker/pkg/logger"
	"tracker/pkg/retrier"
)

type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

func (r *Retrier) newBackOff(ctx context.Context) backoff.BackOffContext {
	var b backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	if r.config.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, r.config.MaxRetries)
	}
	return backoff.WithContext(b, ctx)
}

// ExecuteWithContext вызывает fn до успеха, постоянной ошибки или исчерпания бюджета.
// Возвращается последняя ошибка fn без обёртки.
func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	var attempt uint64

	operation := func() error {
		attempt++
		err := fn(ctx)
		if err != nil && r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.RetryNotify(operation, r.newBackOff(ctx), func(err error, next time.Duration) {
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, next)
		}
	})
}

// Connect ждёт готовности зависимости target с пресетом retrier.ConnectConfig.
func Connect(ctx context.Context, log logger.Logger, target string, check func(context.Context) error) error {
	cfg := retrier.ConnectConfig()
	cfg.OnRetry = func(attempt uint64, err error, next time.Duration) {
		log.Warn("dependency not ready",
			logger.NewField("target", target),
			logger.NewField("attempt", attempt),
			logger.NewField("retry_in", next.String()),
			logger.NewField("error", err),
		)
	}

	if err := New(cfg).ExecuteWithContext(ctx, check); err != nil {
		log.Error("dependency unavailable",
			logger.NewField("target", target),
			logger.NewField("error", err),
		)
		return fmt.Errorf("connect %s: %w", target, err)
	}

	log.Info("dependency ready", logger.NewField("target", target))
	return nil
}
