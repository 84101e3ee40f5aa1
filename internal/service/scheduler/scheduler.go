package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

type Config struct {
	TriggerBuffer int
	BatchSize     int
	Workers       int
}

func (c Config) withDefaults() Config {
	if c.TriggerBuffer <= 0 {
		c.TriggerBuffer = 256
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	return c
}

// Scheduler назначает ожидающие отправки партнёрам. Повторные попытки запускаются
// событиями об освободившейся ёмкости, опроса по таймеру нет.
type Scheduler struct {
	shipments ShipmentRepository
	registry  PartnerRegistry
	txManager TxManager
	retrier   Retrier
	log       logger.Logger
	cfg       Config

	triggers chan []string
	wake     chan struct{}
	overflow atomic.Bool
	running  sync.WaitGroup
}

func New(
	shipments ShipmentRepository,
	registry PartnerRegistry,
	txManager TxManager,
	retrier Retrier,
	log logger.Logger,
	cfg Config,
) *Scheduler {
	cfg = cfg.withDefaults()

	return &Scheduler{
		shipments: shipments,
		registry:  registry,
		txManager: txManager,
		retrier:   retrier,
		log:       log.With(logger.NewField("component", "scheduler")),
		cfg:       cfg,
		triggers:  make(chan []string, cfg.TriggerBuffer),
		wake:      make(chan struct{}, 1),
	}
}

// Assign резервирует ёмкость и закрепляет партнёра за отправкой в одной транзакции.
// apperr.ErrCapacityExhausted означает, что отправка остаётся в placed до следующего события.
func (s *Scheduler) Assign(ctx context.Context, shipmentID uuid.UUID) (*entities.DeliveryPartner, error) {
	start := time.Now()
	defer func() {
		AssignmentDuration.Observe(time.Since(start).Seconds())
	}()

	var assigned *entities.DeliveryPartner
	err := s.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			shipment, err := s.shipments.GetByID(ctx, shipmentID)
			if err != nil {
				return fmt.Errorf("get shipment: %w", err)
			}
			if !shipment.IsPending() {
				return ErrNotPending
			}

			candidates, err := s.registry.EligiblePartners(ctx, shipment.Destination)
			if err != nil {
				return err
			}

			chosen, ok := SelectPartner(candidates, shipment.Destination)
			if !ok {
				return fmt.Errorf("zip %s: %w", shipment.Destination, apperr.ErrCapacityExhausted)
			}

			reserved, err := s.registry.ReserveCapacity(ctx, chosen)
			if err != nil {
				return err
			}

			// откат транзакции вернёт нагрузку, если отправку успели отменить или назначить
			if err := s.shipments.AssignPartner(ctx, shipment.ID, chosen.ID); err != nil {
				return fmt.Errorf("assign partner: %w", err)
			}

			assigned = reserved
			return nil
		})
	})

	switch {
	case err == nil:
		AssignmentsTotal.WithLabelValues("assigned").Inc()
		s.log.Info("shipment assigned",
			logger.NewField("shipment", shipmentID.String()),
			logger.NewField("partner", assigned.ID.String()),
			logger.NewField("load", assigned.CurrentLoad),
		)
		return assigned, nil
	case errors.Is(err, apperr.ErrCapacityExhausted):
		AssignmentsTotal.WithLabelValues("deferred").Inc()
	case errors.Is(err, ErrNotPending), errors.Is(err, apperr.ErrConflict):
		AssignmentsTotal.WithLabelValues("skipped").Inc()
	default:
		AssignmentsTotal.WithLabelValues("failed").Inc()
	}
	return nil, err
}

// Notify не блокируется: при переполнении очереди событие сворачивается в полный обход.
func (s *Scheduler) Notify(_ context.Context, event entities.CapacityEvent) {
	TriggersTotal.WithLabelValues(event.Kind.String()).Inc()
	if len(event.ZipCodes) == 0 {
		return
	}

	select {
	case s.triggers <- event.ZipCodes:
	default:
		TriggerOverflowTotal.Inc()
		s.overflow.Store(true)
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// Run делает полный обход при старте и затем обрабатывает события до отмены ctx.
func (s *Scheduler) Run(ctx context.Context) error {
	s.running.Add(1)
	defer s.running.Done()

	s.log.Info("scheduler started")
	s.sweep(ctx, nil)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return nil
		case zipCodes := <-s.triggers:
			if s.overflow.Swap(false) {
				s.drain()
				s.sweep(ctx, nil)
				continue
			}
			s.sweep(ctx, zipCodes)
		case <-s.wake:
			if s.overflow.Swap(false) {
				s.drain()
				s.sweep(ctx, nil)
			}
		}
	}
}

// Wait дожидается выхода из Run.
func (s *Scheduler) Wait() {
	s.running.Wait()
}

func (s *Scheduler) drain() {
	for {
		select {
		case <-s.triggers:
		default:
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context, zipCodes []string) {
	assigned, err := s.RetryPending(ctx, zipCodes)
	if err != nil && ctx.Err() == nil {
		s.log.Error("retry pending shipments", logger.NewField("error", err))
		return
	}
	if assigned > 0 {
		s.log.Info("pending shipments assigned",
			logger.NewField("count", assigned),
			logger.NewField("zip_codes", zipCodes),
		)
	}
}

// RetryPending проходит ожидающие отправки для zipCodes (все при пустом списке)
// в порядке создания. Зона пропускается до конца обхода, как только ёмкость в ней кончилась.
func (s *Scheduler) RetryPending(ctx context.Context, zipCodes []string) (int, error) {
	var (
		total     int
		cursor    *entities.PendingCursor
		exhausted sync.Map
	)

	for {
		batch, err := s.shipments.ListPending(ctx, entities.PendingQuery{
			ZipCodes: zipCodes,
			After:    cursor,
			Limit:    s.cfg.BatchSize,
		})
		if err != nil {
			return total, fmt.Errorf("list pending shipments: %w", err)
		}
		if len(batch) == 0 {
			return total, nil
		}

		assigned, err := s.assignBatch(ctx, batch, &exhausted)
		total += assigned
		if err != nil {
			return total, err
		}

		if len(batch) < s.cfg.BatchSize {
			return total, nil
		}
		cursor = entities.CursorOf(batch[len(batch)-1])
	}
}

// assignBatch обрабатывает зоны параллельно, внутри зоны сохраняется порядок создания.
func (s *Scheduler) assignBatch(ctx context.Context, batch []entities.Shipment, exhausted *sync.Map) (int, error) {
	byZip := make(map[string][]uuid.UUID)
	zips := make([]string, 0)
	for _, shipment := range batch {
		if _, ok := exhausted.Load(shipment.Destination); ok {
			continue
		}
		if _, ok := byZip[shipment.Destination]; !ok {
			zips = append(zips, shipment.Destination)
		}
		byZip[shipment.Destination] = append(byZip[shipment.Destination], shipment.ID)
	}

	var assigned atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, zip := range zips {
		ids := byZip[zip]
		g.Go(func() error {
			for _, id := range ids {
				_, err := s.Assign(gctx, id)
				switch {
				case err == nil:
					assigned.Add(1)
				case errors.Is(err, apperr.ErrCapacityExhausted):
					exhausted.Store(zip, struct{}{})
					return nil
				case errors.Is(err, ErrNotPending), errors.Is(err, apperr.ErrConflict):
				case gctx.Err() != nil:
					return gctx.Err()
				default:
					s.log.Warn("assignment failed",
						logger.NewField("shipment", id.String()),
						logger.NewField("error", err),
					)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return int(assigned.Load()), err
}
