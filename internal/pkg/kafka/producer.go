package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"tracker/internal/pkg/config"
	"tracker/pkg/logger"
)

const producerRetryMax = 3

func NewProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	// SyncProducer требует Return.Successes
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = producerRetryMax
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	return cfg, nil
}

// NewSyncProducer дожидается доступности брокеров так же, как consumer.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	saramaConfig, err := NewProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build producer config: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", cfg.Brokers),
		logger.NewField("component", "kafka-producer"),
	)

	if err := pingKafka(ctx, kafkaLog, cfg.Brokers, saramaConfig, []string{cfg.NotificationsTopic}); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}
	return producer, nil
}

// NewAsyncProducer используется там, где публикация не должна задерживать вызывающего.
func NewAsyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.AsyncProducer, error) {
	saramaConfig, err := NewProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build producer config: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", cfg.Brokers),
		logger.NewField("component", "kafka-async-producer"),
	)

	if err := pingKafka(ctx, kafkaLog, cfg.Brokers, saramaConfig, []string{cfg.CapacityTopic}); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create async producer: %w", err)
	}
	return producer, nil
}
