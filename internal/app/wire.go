//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"tracker/internal/gateway/capacity"
	"tracker/internal/handlers/rest/healthcheck_head"
	"tracker/internal/handlers/tasks/pending_sweep"
	"tracker/internal/handlers/tasks/token_cleanup"
	"tracker/internal/pkg/config"
	"tracker/internal/repository/memory"
	partnerRepo "tracker/internal/repository/partner"
	shipmentRepo "tracker/internal/repository/shipment"
	tokenRepo "tracker/internal/repository/token"
	partnerService "tracker/internal/service/partner"
	schedulerService "tracker/internal/service/scheduler"
	shipmentService "tracker/internal/service/shipment"
	tagService "tracker/internal/service/tag"
	tokenService "tracker/internal/service/token"
	"tracker/pkg/keymutex"
	"tracker/pkg/logger"
	"tracker/pkg/querier"
	"tracker/pkg/retrier/backoff_adapter"
	"tracker/pkg/tx"
)

// domainSet не зависит от хранилища: сервисы, фоновые задачи и события ёмкости.
var domainSet = wire.NewSet(
	provideRetrier,
	provideLocker,
	provideTokenGenerator,
	provideBroadcaster,
	provideCapacityPublisher,
	provideNotificationSender,
	providePartnerRegistry,
	provideScheduler,
	provideTokenIssuer,
	provideTagEngine,
	provideShipmentService,

	provideTokenCleanupInterval,
	providePendingSweepInterval,
	provideTokenCleanupTask,
	providePendingSweepTask,
	provideTaskList,
	provideBackgroundWorkers,

	wire.Struct(new(Application), "*"),

	wire.Bind(new(ServiceShipment), new(*shipmentService.Service)),
	wire.Bind(new(ServicePartner), new(*partnerService.Registry)),
	wire.Bind(new(ServiceTag), new(*tagService.Engine)),

	wire.Bind(new(partnerService.CapacityNotifier), new(*capacity.Broadcaster)),
	wire.Bind(new(shipmentService.CapacityNotifier), new(*capacity.Broadcaster)),

	wire.Bind(new(partnerService.Retrier), new(*backoff_adapter.Retrier)),
	wire.Bind(new(schedulerService.Retrier), new(*backoff_adapter.Retrier)),
	wire.Bind(new(shipmentService.Retrier), new(*backoff_adapter.Retrier)),

	wire.Bind(new(schedulerService.PartnerRegistry), new(*partnerService.Registry)),
	wire.Bind(new(shipmentService.PartnerRegistry), new(*partnerService.Registry)),
	wire.Bind(new(shipmentService.Scheduler), new(*schedulerService.Scheduler)),
	wire.Bind(new(shipmentService.TokenIssuer), new(*tokenService.Issuer)),
	wire.Bind(new(shipmentService.TagEngine), new(*tagService.Engine)),
	wire.Bind(new(shipmentService.Locker), new(*keymutex.KeyMutex)),

	wire.Bind(new(token_cleanup.Service), new(*tokenService.Issuer)),
	wire.Bind(new(pending_sweep.Scheduler), new(*schedulerService.Scheduler)),
)

// InitializeApplication для HTTP сервиса (cmd/service) поверх Postgres.
// Пустые producer означают, что Kafka выключена.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
	syncProducer sarama.SyncProducer,
	asyncProducer sarama.AsyncProducer,
) (*Application, error) {
	wire.Build(
		domainSet,

		provideTxManager,
		provideQuerier,
		provideShipmentRepository,
		providePartnerRepository,
		provideTokenRepository,

		wire.Bind(new(healthcheck_head.Pinger), new(*querier.Querier)),

		wire.Bind(new(shipmentService.Repository), new(*shipmentRepo.Repository)),
		wire.Bind(new(schedulerService.ShipmentRepository), new(*shipmentRepo.Repository)),
		wire.Bind(new(tagService.Repository), new(*shipmentRepo.Repository)),
		wire.Bind(new(tokenService.ShipmentReader), new(*shipmentRepo.Repository)),
		wire.Bind(new(partnerService.Repository), new(*partnerRepo.Repository)),
		wire.Bind(new(tokenService.Repository), new(*tokenRepo.Repository)),

		wire.Bind(new(partnerService.TxManager), new(*tx.Manager)),
		wire.Bind(new(schedulerService.TxManager), new(*tx.Manager)),
		wire.Bind(new(shipmentService.TxManager), new(*tx.Manager)),
		wire.Bind(new(tokenService.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

// InitializeMemoryApplication собирает то же приложение поверх хранилища в памяти.
func InitializeMemoryApplication(
	ctx context.Context,
	log logger.Logger,
	store *memory.Store,
	cfg *config.Config,
	syncProducer sarama.SyncProducer,
	asyncProducer sarama.AsyncProducer,
) (*Application, error) {
	wire.Build(
		domainSet,

		memory.NewShipmentRepository,
		memory.NewPartnerRepository,
		memory.NewTokenRepository,

		wire.Bind(new(healthcheck_head.Pinger), new(*memory.Store)),

		wire.Bind(new(shipmentService.Repository), new(*memory.ShipmentRepository)),
		wire.Bind(new(schedulerService.ShipmentRepository), new(*memory.ShipmentRepository)),
		wire.Bind(new(tagService.Repository), new(*memory.ShipmentRepository)),
		wire.Bind(new(tokenService.ShipmentReader), new(*memory.ShipmentRepository)),
		wire.Bind(new(partnerService.Repository), new(*memory.PartnerRepository)),
		wire.Bind(new(tokenService.Repository), new(*memory.TokenRepository)),

		wire.Bind(new(partnerService.TxManager), new(*memory.Store)),
		wire.Bind(new(schedulerService.TxManager), new(*memory.Store)),
		wire.Bind(new(shipmentService.TxManager), new(*memory.Store)),
		wire.Bind(new(tokenService.TxManager), new(*memory.Store)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-capacity-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideShipmentRepository,
		providePartnerRepository,
		provideRetrier,
		provideBroadcaster,
		providePartnerRegistry,
		provideScheduler,

		wire.Bind(new(schedulerService.ShipmentRepository), new(*shipmentRepo.Repository)),
		wire.Bind(new(partnerService.Repository), new(*partnerRepo.Repository)),
		wire.Bind(new(partnerService.CapacityNotifier), new(*capacity.Broadcaster)),
		wire.Bind(new(schedulerService.PartnerRegistry), new(*partnerService.Registry)),
		wire.Bind(new(partnerService.Retrier), new(*backoff_adapter.Retrier)),
		wire.Bind(new(schedulerService.Retrier), new(*backoff_adapter.Retrier)),
		wire.Bind(new(partnerService.TxManager), new(*tx.Manager)),
		wire.Bind(new(schedulerService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
