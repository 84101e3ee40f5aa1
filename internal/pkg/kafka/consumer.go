package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"tracker/internal/pkg/config"
	"tracker/pkg/logger"
)

type Consumer struct {
	log     logger.Logger
	client  sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler

	errorsDone sync.WaitGroup
}

// NewSaramaConfig собирает конфиг группы. Ошибки группы возвращаются в канал
// Errors(), их читает Consumer.
func NewSaramaConfig(
	versionStr string,
	autoCommit bool,
	initialOffset int64,
	rebalanceStrategy sarama.BalanceStrategy,
) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Consumer.Offsets.Initial = initialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = autoCommit
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{rebalanceStrategy}
	cfg.Consumer.Return.Errors = true

	return cfg, nil
}

// NewConsumer дожидается брокеров и топиков из topics, после чего создаёт группу.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, groupID string, topics []string, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	if len(topics) == 0 {
		return nil, errors.New("kafka consumer: no topics")
	}

	saramaConfig, err := NewSaramaConfig(
		cfg.Sarama.Version,
		cfg.Sarama.ConsumerOffsetsAutocommit,
		sarama.OffsetOldest,
		sarama.NewBalanceStrategyRoundRobin(),
	)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", cfg.Brokers),
		logger.NewField("group", groupID),
		logger.NewField("topics", topics),
	)

	if err := pingKafka(ctx, kafkaLog, cfg.Brokers, saramaConfig, topics); err != nil {
		return nil, err
	}

	client, err := sarama.NewConsumerGroup(cfg.Brokers, groupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group %s: %w", groupID, err)
	}

	c := &Consumer{
		log:     kafkaLog,
		client:  client,
		topics:  topics,
		handler: handler,
	}

	c.errorsDone.Add(1)
	go c.drainErrors()

	return c, nil
}

// Start блокируется до отмены ctx или закрытия группы. Consume возвращается
// после каждой ребалансировки, новая сессия открывается в цикле.
// Отмена ctx и закрытая группа считаются штатной остановкой.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("kafka consumer started")

	for session := 1; ; session++ {
		err := c.client.Consume(ctx, c.topics, c.handler)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			c.log.Info("kafka consumer group closed")
			return nil
		case err != nil:
			c.log.Error("kafka consume failed",
				logger.NewField("session", session),
				logger.NewField("error", err),
			)
			return fmt.Errorf("consume %v: %w", c.topics, err)
		case ctx.Err() != nil:
			c.log.Info("kafka consumer stopped", logger.NewField("sessions", session))
			return nil
		}

		ConsumerRebalancesTotal.Inc()
		c.log.Info("kafka consumer rebalanced", logger.NewField("session", session))
	}
}

// Close закрывает группу и дожидается, пока будут залогированы оставшиеся ошибки.
func (c *Consumer) Close() error {
	err := c.client.Close()
	c.errorsDone.Wait()
	return err
}

func (c *Consumer) drainErrors() {
	defer c.errorsDone.Done()

	for err := range c.client.Errors() {
		ConsumerErrorsTotal.Inc()
		c.log.Warn("kafka consumer group error", logger.NewField("error", err))
	}
}
