package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "tracker/internal/app"
	"tracker/internal/handlers/rest/healthcheck_head"
	"tracker/internal/handlers/rest/partner_get"
	"tracker/internal/handlers/rest/partner_post"
	"tracker/internal/handlers/rest/partner_put"
	"tracker/internal/handlers/rest/partner_shipments_get"
	"tracker/internal/handlers/rest/partners_get"
	"tracker/internal/handlers/rest/ping_get"
	"tracker/internal/handlers/rest/review_get"
	"tracker/internal/handlers/rest/review_post"
	"tracker/internal/handlers/rest/shipment_cancel_post"
	"tracker/internal/handlers/rest/shipment_get"
	"tracker/internal/handlers/rest/shipment_patch"
	"tracker/internal/handlers/rest/shipment_post"
	"tracker/internal/handlers/rest/shipment_tag_delete"
	"tracker/internal/handlers/rest/shipment_tag_post"
	"tracker/internal/handlers/rest/shipments_get"
	"tracker/internal/pkg/config"
	"tracker/internal/pkg/dotenv"
	"tracker/internal/pkg/grpcserver"
	"tracker/internal/pkg/kafka"
	metrics_system "tracker/internal/pkg/metrics"
	"tracker/internal/pkg/middlewares/graceful_shutdown"
	"tracker/internal/pkg/middlewares/metrics"
	"tracker/internal/pkg/middlewares/rate_limiter"
	"tracker/internal/pkg/middlewares/timeout"
	"tracker/internal/pkg/postgres"
	"tracker/internal/repository/memory"
	"tracker/pkg/logger"
	"tracker/pkg/logger/zap_adapter"
	"tracker/pkg/token_bucket"
)

const serviceName = "tracker-api"

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"), zap_adapter.WithService(serviceName))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting tracker application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	if err := dotenv.ApplyFlags("service", os.Args[1:]); err != nil {
		mainLog.Error("parse flags", logger.NewField("error", err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With(logger.NewField("storage", cfg.Storage.Driver))

	syncProducer, asyncProducer, err := initProducers(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("kafka producers: %w", err)
	}
	if syncProducer != nil {
		defer func() {
			if err := syncProducer.Close(); err != nil {
				runLog.Error("failed to close kafka producer", logger.NewField("error", err))
			}
		}()
	}

	businessApp, closeStorage, err := initApplication(ctx, log, cfg, syncProducer, asyncProducer)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}
	defer closeStorage()

	if businessApp.CapacityPublisher != nil {
		defer func() {
			if err := businessApp.CapacityPublisher.Close(); err != nil {
				runLog.Error("failed to close capacity publisher", logger.NewField("error", err))
			}
		}()
	}

	metrics_system.StartSystemMetricsCollector(ctx, log, metrics_system.DefaultCollectInterval)

	// Run возвращает nil при отмене ctx, канал не закрываем, чтобы select не принял это за ошибку
	schedulerErr := make(chan error, 1)
	go func() {
		if err := businessApp.Scheduler.Run(ctx); err != nil {
			schedulerErr <- err
		}
	}()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health, по нему воркеры ждут готовности API
	grpcServer := grpcserver.New(log)
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	grpcServerErr := make(chan error, 1)
	go func() {
		defer close(grpcServerErr)
		if err := grpcServer.Serve(grpcListener); err != nil {
			grpcServerErr <- err
		}
	}()
	grpcServer.SetServing(true)

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr:
		return fmt.Errorf("grpc server: %w", err)
	case err := <-schedulerErr:
		return fmt.Errorf("scheduler: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	grpcServer.SetServing(false)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	grpcServer.Stop()

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	// планировщик и фоновые задачи остановлены отменой ctx, дожидаемся выхода
	businessApp.Scheduler.Wait()
	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

// initProducers возвращает nil-продюсеры, если Kafka выключена: уведомления
// тогда пишутся в лог, а события ёмкости остаются внутри процесса.
func initProducers(ctx context.Context, log logger.Logger, cfg *config.Config) (sarama.SyncProducer, sarama.AsyncProducer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil, nil
	}

	syncProducer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("sync producer: %w", err)
	}

	asyncProducer, err := kafka.NewAsyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		if closeErr := syncProducer.Close(); closeErr != nil {
			return nil, nil, fmt.Errorf("async producer: %w (failed to close sync producer: %v)", err, closeErr)
		}
		return nil, nil, fmt.Errorf("async producer: %w", err)
	}
	return syncProducer, asyncProducer, nil
}

func initApplication(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
	syncProducer sarama.SyncProducer,
	asyncProducer sarama.AsyncProducer,
) (*application.Application, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		businessApp, err := application.InitializeMemoryApplication(ctx, log, memory.NewStore(), cfg, syncProducer, asyncProducer)
		if err != nil {
			return nil, nil, err
		}
		return businessApp, func() {}, nil
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}

	if cfg.Storage.MigrationsAuto {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, cfg, syncProducer, asyncProducer)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return businessApp, pool.Close, nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Pinger)).Methods(http.MethodHead)

	api := router.NewRoute().Subrouter()
	api.Use(timeout.Middleware(cfg.RequestTimeout))
	api.Use(metrics.Middleware(log))
	api.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))

	api.Handle("/ping", ping_get.New(log, serviceName, time.Now)).Methods(http.MethodGet)

	api.Handle("/shipment", shipment_post.New(log, app.ServiceShipment)).Methods(http.MethodPost)
	api.Handle("/shipment/{id}", shipment_get.New(log, app.ServiceShipment)).Methods(http.MethodGet)
	api.Handle("/shipment/{id}", shipment_patch.New(log, app.ServiceShipment)).Methods(http.MethodPatch)
	api.Handle("/shipment/{id}/cancel", shipment_cancel_post.New(log, app.ServiceShipment)).Methods(http.MethodPost)
	api.Handle("/shipment/{id}/tag", shipment_tag_post.New(log, app.ServiceTag)).Methods(http.MethodPost)
	api.Handle("/shipment/{id}/tag/{tag}", shipment_tag_delete.New(log, app.ServiceTag)).Methods(http.MethodDelete)
	api.Handle("/shipments", shipments_get.New(log, app.ServiceShipment)).Methods(http.MethodGet)

	api.Handle("/review", review_get.New(log, app.ServiceShipment)).Methods(http.MethodGet)
	api.Handle("/review", review_post.New(log, app.ServiceShipment)).Methods(http.MethodPost)

	api.Handle("/partner", partner_post.New(log, app.ServicePartner)).Methods(http.MethodPost)
	api.Handle("/partner/{id}", partner_put.New(log, app.ServicePartner)).Methods(http.MethodPut)
	api.Handle("/partner/{id}", partner_get.New(log, app.ServicePartner)).Methods(http.MethodGet)
	api.Handle("/partner/{id}/shipments", partner_shipments_get.New(log, app.ServiceShipment)).Methods(http.MethodGet)
	api.Handle("/partners", partners_get.New(log, app.ServicePartner)).Methods(http.MethodGet)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
