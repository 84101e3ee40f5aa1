package app

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"tracker/internal/apperr"
	"tracker/internal/gateway/capacity"
	"tracker/internal/gateway/notification"
	"tracker/internal/handlers/tasks/pending_sweep"
	"tracker/internal/handlers/tasks/token_cleanup"
	"tracker/internal/pkg/config"
	"tracker/internal/repository"
	partnerRepo "tracker/internal/repository/partner"
	shipmentRepo "tracker/internal/repository/shipment"
	tokenRepo "tracker/internal/repository/token"
	partnerService "tracker/internal/service/partner"
	schedulerService "tracker/internal/service/scheduler"
	shipmentService "tracker/internal/service/shipment"
	tagService "tracker/internal/service/tag"
	tokenService "tracker/internal/service/token"
	"tracker/pkg/background"
	"tracker/pkg/keymutex"
	"tracker/pkg/logger"
	"tracker/pkg/querier"
	"tracker/pkg/retrier"
	"tracker/pkg/retrier/backoff_adapter"
	"tracker/pkg/tx"
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool, tx.WithErrorTranslator(repository.TranslateTx))
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter, log logger.Logger, cfg *config.Config) *querier.Querier {
	return querier.New(pool, getter,
		querier.WithSlowQueryLog(log.With(logger.NewField("component", "querier")), cfg.Database.SlowQueryThreshold),
	)
}

func provideShipmentRepository(querier *querier.Querier) *shipmentRepo.Repository {
	return shipmentRepo.New(querier)
}

func providePartnerRepository(querier *querier.Querier) *partnerRepo.Repository {
	return partnerRepo.New(querier)
}

func provideTokenRepository(querier *querier.Querier) *tokenRepo.Repository {
	return tokenRepo.New(querier)
}

// provideRetrier повторяет только конфликты конкурентного изменения.
func provideRetrier(cfg *config.Config) *backoff_adapter.Retrier {
	return backoff_adapter.New(retrier.Config{
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
		Randomization:   0.5,
		Multiplier:      2,
		MaxRetries:      uint64(cfg.Scheduler.ConflictRetries),
		ShouldRetry:     retrier.RetryOn(apperr.ErrConcurrentModification),
	})
}

func provideLocker() *keymutex.KeyMutex {
	return keymutex.New()
}

func provideTokenGenerator() tokenService.Generator {
	return tokenService.RandomGenerator{}
}

func provideTokenCleanupInterval(cfg *config.Config) TokenCleanupInterval {
	return TokenCleanupInterval(cfg.Tasks.TokenCleanupInterval)
}

func providePendingSweepInterval(cfg *config.Config) PendingSweepInterval {
	return PendingSweepInterval(cfg.Tasks.PendingSweepInterval)
}

func provideBroadcaster() *capacity.Broadcaster {
	return capacity.NewBroadcaster()
}

// provideCapacityPublisher возвращает nil, если Kafka выключена.
func provideCapacityPublisher(
	log logger.Logger,
	cfg *config.Config,
	producer sarama.AsyncProducer,
	broadcaster *capacity.Broadcaster,
) *capacity.Publisher {
	if producer == nil {
		return nil
	}

	publisher := capacity.NewPublisher(producer, cfg.Kafka.CapacityTopic, log)
	broadcaster.Subscribe(publisher)
	return publisher
}

func provideNotificationSender(
	log logger.Logger,
	cfg *config.Config,
	producer sarama.SyncProducer,
) shipmentService.NotificationSender {
	if producer == nil {
		return notification.NewLogGateway(log)
	}
	return notification.New(producer, cfg.Kafka.NotificationsTopic)
}

func providePartnerRegistry(
	repository partnerService.Repository,
	notifier partnerService.CapacityNotifier,
	txManager partnerService.TxManager,
	retrier partnerService.Retrier,
	log logger.Logger,
) *partnerService.Registry {
	return partnerService.New(repository, notifier, txManager, retrier, log)
}

// provideScheduler подписывает планировщик на события ёмкости процесса.
func provideScheduler(
	shipments schedulerService.ShipmentRepository,
	registry schedulerService.PartnerRegistry,
	txManager schedulerService.TxManager,
	retrier schedulerService.Retrier,
	log logger.Logger,
	cfg *config.Config,
	broadcaster *capacity.Broadcaster,
) *schedulerService.Scheduler {
	scheduler := schedulerService.New(shipments, registry, txManager, retrier, log, schedulerService.Config{
		TriggerBuffer: cfg.Scheduler.TriggerBuffer,
		BatchSize:     cfg.Scheduler.BatchSize,
		Workers:       cfg.Scheduler.Workers,
	})
	broadcaster.Subscribe(scheduler)
	return scheduler
}

func provideTokenIssuer(
	repository tokenService.Repository,
	shipments tokenService.ShipmentReader,
	generator tokenService.Generator,
	txManager tokenService.TxManager,
	log logger.Logger,
	cfg *config.Config,
) *tokenService.Issuer {
	return tokenService.New(repository, shipments, generator, txManager, log, cfg.Lifecycle.ReviewTokenTTL)
}

func provideTagEngine(repository tagService.Repository, log logger.Logger) *tagService.Engine {
	return tagService.New(repository, log)
}

func provideShipmentService(
	repository shipmentService.Repository,
	tags shipmentService.TagEngine,
	tokens shipmentService.TokenIssuer,
	partners shipmentService.PartnerRegistry,
	scheduler shipmentService.Scheduler,
	notifier shipmentService.CapacityNotifier,
	notifications shipmentService.NotificationSender,
	locker shipmentService.Locker,
	txManager shipmentService.TxManager,
	retrier shipmentService.Retrier,
	log logger.Logger,
	cfg *config.Config,
) *shipmentService.Service {
	return shipmentService.New(shipmentService.Dependencies{
		Repository:    repository,
		Tags:          tags,
		Tokens:        tokens,
		Partners:      partners,
		Scheduler:     scheduler,
		Capacity:      notifier,
		Notifications: notifications,
		Locker:        locker,
		TxManager:     txManager,
		Retrier:       retrier,
	}, log, shipmentService.Config{
		EstimatedDeliveryWindow: cfg.Lifecycle.EstimatedDeliveryWindow,
	})
}

func provideTokenCleanupTask(
	log logger.Logger,
	issuer token_cleanup.Service,
	interval TokenCleanupInterval,
) *token_cleanup.TokenCleanup {
	return token_cleanup.NewTokenCleanup(log, issuer, time.Duration(interval))
}

func providePendingSweepTask(
	log logger.Logger,
	scheduler pending_sweep.Scheduler,
	interval PendingSweepInterval,
) *pending_sweep.PendingSweep {
	return pending_sweep.NewPendingSweep(log, scheduler, time.Duration(interval))
}

func provideTaskList(
	tokenCleanupTask *token_cleanup.TokenCleanup,
	pendingSweepTask *pending_sweep.PendingSweep,
) []background.Task {
	tasks := []background.Task{tokenCleanupTask}

	// обход по таймеру включается только явным BACKGROUND_PENDING_SWEEP_INTERVAL
	if pendingSweepTask.Interval() > 0 {
		tasks = append(tasks, pendingSweepTask)
	}

	return tasks
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
