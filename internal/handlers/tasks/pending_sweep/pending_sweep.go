package pending_sweep

import (
	"context"
	"time"

	"tracker/pkg/logger"
)

type Scheduler interface {
	RetryPending(ctx context.Context, zipCodes []string) (int, error)
}

// PendingSweep периодически обходит все ожидающие отправки. Подстраховывает
// событийные повторы, если событие о ёмкости было потеряно.
type PendingSweep struct {
	log       logger.Logger
	scheduler Scheduler
	interval  time.Duration
}

func NewPendingSweep(log logger.Logger, scheduler Scheduler, interval time.Duration) *PendingSweep {
	return &PendingSweep{
		log:       log,
		scheduler: scheduler,
		interval:  interval,
	}
}

func (p *PendingSweep) Interval() time.Duration {
	return p.interval
}

func (p *PendingSweep) Run(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	assigned, err := p.scheduler.RetryPending(ctxWithTimeout, nil)

	if assigned > 0 {
		p.log.With(
			logger.NewField("assigned", assigned),
		).Info("pending sweep")
	}

	return err
}

func (p *PendingSweep) Name() string {
	return "pending_sweep"
}
