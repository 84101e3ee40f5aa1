package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

const (
	defaultReviewTokenTTL          = 720 * time.Hour
	defaultEstimatedDeliveryWindow = 72 * time.Hour
	defaultTriggerBuffer           = 256
	defaultPendingBatchSize        = 100
	defaultPendingWorkers          = 4
	defaultConflictRetries         = 5
	defaultTokenCleanupInterval    = time.Hour
	defaultDBMaxConns              = 10
	defaultDBMinConns              = 2
	defaultSlowQueryThreshold      = 200 * time.Millisecond
)

type (
	Tasks struct {
		TokenCleanupInterval time.Duration
		PendingSweepInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
		GRPCPort         string
	}

	Storage struct {
		Driver         string
		MigrationsAuto bool
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		MaxConns int32
		MinConns int32

		// запросы дольше порога пишутся в лог с текстом SQL
		SlowQueryThreshold time.Duration
	}

	TrackerService struct {
		GRPCHost string
	}

	Kafka struct {
		Enabled            bool
		PortHealthcheck    string
		Brokers            []string
		NotificationsTopic string
		CapacityTopic      string
		ConsumerGroup      string
		Sarama             Sarama
		Handlers           KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		CapacityChanged CapacityChanged
	}

	CapacityChanged struct {
		ProcessTimeout time.Duration
	}

	Lifecycle struct {
		ReviewTokenTTL          time.Duration
		EstimatedDeliveryWindow time.Duration
	}

	Scheduler struct {
		TriggerBuffer   int
		BatchSize       int
		Workers         int
		ConflictRetries int // сколько раз повторять операцию при конкурентной записи
	}

	Config struct {
		Tasks          Tasks
		Server         HTTPServer
		Storage        Storage
		Database       Database
		TrackerService TrackerService
		Kafka          Kafka
		Lifecycle      Lifecycle
		Scheduler      Scheduler
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	tokenCleanupInterval, err := osGetEnvDuration("BACKGROUND_TOKEN_CLEANUP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pendingSweepInterval, err := osGetEnvDuration("BACKGROUND_PENDING_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrationsAuto, err := osGetBool("DB_MIGRATIONS_AUTO")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kafkaEnabled, err := osGetBool("KAFKA_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	capacityChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_CAPACITY_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reviewTokenTTL, err := osGetEnvDuration("LIFECYCLE_REVIEW_TOKEN_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	estimatedDeliveryWindow, err := osGetEnvDuration("LIFECYCLE_ESTIMATED_DELIVERY_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	triggerBuffer, err := osGetInt("SCHEDULER_TRIGGER_BUFFER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	batchSize, err := osGetInt("SCHEDULER_PENDING_BATCH_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	workers, err := osGetInt("SCHEDULER_PENDING_WORKERS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	conflictRetries, err := osGetInt("SCHEDULER_CONFLICT_RETRIES")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	minConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	slowQueryThreshold, err := osGetEnvDuration("POSTGRES_SLOW_QUERY_THRESHOLD")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			TokenCleanupInterval: tokenCleanupInterval,
			PendingSweepInterval: pendingSweepInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
			GRPCPort:         os.Getenv("GRPC_PORT"),
		},
		Storage: Storage{
			Driver:         strings.ToLower(os.Getenv("STORAGE_DRIVER")),
			MigrationsAuto: migrationsAuto,
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: int32(maxConns),
			MinConns: int32(minConns),

			SlowQueryThreshold: slowQueryThreshold,
		},
		TrackerService: TrackerService{
			GRPCHost: os.Getenv("TRACKER_SERVICE_GRPC_HOST"),
		},
		Kafka: Kafka{
			Enabled:            kafkaEnabled,
			Brokers:            osGetList("KAFKA_BROKERS"),
			NotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
			CapacityTopic:      os.Getenv("KAFKA_CAPACITY_TOPIC"),
			ConsumerGroup:      os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck:    os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				CapacityChanged: CapacityChanged{
					ProcessTimeout: capacityChangedTimeout,
				},
			},
		},
		Lifecycle: Lifecycle{
			ReviewTokenTTL:          reviewTokenTTL,
			EstimatedDeliveryWindow: estimatedDeliveryWindow,
		},
		Scheduler: Scheduler{
			TriggerBuffer:   triggerBuffer,
			BatchSize:       batchSize,
			Workers:         workers,
			ConflictRetries: conflictRetries,
		},
	}, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverPostgres
	}
	if cfg.Lifecycle.ReviewTokenTTL == 0 {
		cfg.Lifecycle.ReviewTokenTTL = defaultReviewTokenTTL
	}
	if cfg.Lifecycle.EstimatedDeliveryWindow == 0 {
		cfg.Lifecycle.EstimatedDeliveryWindow = defaultEstimatedDeliveryWindow
	}
	if cfg.Scheduler.TriggerBuffer == 0 {
		cfg.Scheduler.TriggerBuffer = defaultTriggerBuffer
	}
	if cfg.Scheduler.BatchSize == 0 {
		cfg.Scheduler.BatchSize = defaultPendingBatchSize
	}
	if cfg.Scheduler.Workers == 0 {
		cfg.Scheduler.Workers = defaultPendingWorkers
	}
	if cfg.Scheduler.ConflictRetries == 0 {
		cfg.Scheduler.ConflictRetries = defaultConflictRetries
	}
	if cfg.Tasks.TokenCleanupInterval == 0 {
		cfg.Tasks.TokenCleanupInterval = defaultTokenCleanupInterval
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = defaultDBMaxConns
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = defaultDBMinConns
	}
	if cfg.Database.SlowQueryThreshold == 0 {
		cfg.Database.SlowQueryThreshold = defaultSlowQueryThreshold
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}
	if cfg.Server.GRPCPort == "" {
		return errors.New("GRPC_PORT is required")
	}

	switch cfg.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if err := validateDatabase(&cfg.Database); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Lifecycle.ReviewTokenTTL < 0 {
		return errors.New("LIFECYCLE_REVIEW_TOKEN_TTL must be positive")
	}
	if cfg.Lifecycle.EstimatedDeliveryWindow < 0 {
		return errors.New("LIFECYCLE_ESTIMATED_DELIVERY_WINDOW must be positive")
	}
	if cfg.Scheduler.TriggerBuffer < 0 || cfg.Scheduler.BatchSize < 0 || cfg.Scheduler.Workers < 0 {
		return errors.New("SCHEDULER_* values must be positive")
	}
	if cfg.Scheduler.ConflictRetries < 0 {
		return errors.New("SCHEDULER_CONFLICT_RETRIES must be positive")
	}

	if cfg.Kafka.Enabled {
		if err := validateKafka(&cfg.Kafka); err != nil {
			return err
		}
	}

	return nil
}

func validateDatabase(db *Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if db.MinConns < 0 || db.MaxConns < 0 || db.MinConns > db.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}
	return nil
}

func validateKafka(k *Kafka) error {
	if len(k.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.NotificationsTopic == "" {
		return errors.New("KAFKA_NOTIFICATIONS_TOPIC is required")
	}
	if k.CapacityTopic == "" {
		return errors.New("KAFKA_CAPACITY_TOPIC is required")
	}
	if k.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	return nil
}

// ValidateWorker проверяет то, что нужно только воркеру capacity_changed.
func ValidateWorker(cfg *Config) error {
	if !cfg.Kafka.Enabled {
		return errors.New("KAFKA_ENABLED must be true for the worker")
	}
	if cfg.Storage.Driver != StorageDriverPostgres {
		return errors.New("worker requires STORAGE_DRIVER=postgres")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Handlers.CapacityChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_CAPACITY_CHANGED_PROCESS_TIMEOUT is required")
	}
	if cfg.TrackerService.GRPCHost == "" {
		return errors.New("TRACKER_SERVICE_GRPC_HOST is required")
	}
	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

// osGetList разбирает список через запятую, пустые элементы отбрасываются.
func osGetList(s string) []string {
	val := os.Getenv(s)
	if val == "" {
		return nil
	}

	var res []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
