package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"tracker/internal/entities"
	retrierconfig "tracker/pkg/retrier"
	"tracker/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Gateway публикует уведомления в Kafka для внешнего почтового сервиса.
type Gateway struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry: retrierconfig.RetryOn(
			sarama.ErrOutOfBrokers,
			sarama.ErrNotLeaderForPartition,
			sarama.ErrLeaderNotAvailable,
			sarama.ErrRequestTimedOut,
			sarama.ErrNotEnoughReplicas,
		),
	}

	return &Gateway{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
		topic:    topic,
	}
}

func (g *Gateway) Send(ctx context.Context, notification entities.Notification) error {
	payload, err := json.Marshal(toMessage(notification))
	if err != nil {
		return fmt.Errorf("gateway notification, marshal: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: g.topic,
		// все уведомления одной отправки попадают в одну партицию
		Key:   sarama.StringEncoder(notification.ShipmentID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	start := time.Now()
	err = g.retrier.ExecuteWithContext(ctx, func(context.Context) error {
		_, _, err := g.producer.SendMessage(msg)
		return err
	})
	PublishDuration.WithLabelValues(notification.Kind.String()).Observe(time.Since(start).Seconds())

	if err != nil {
		NotificationsSentTotal.WithLabelValues(notification.Kind.String(), "kafka", "error").Inc()
		return fmt.Errorf("gateway notification, publish %s: %w", notification.Kind, err)
	}

	NotificationsSentTotal.WithLabelValues(notification.Kind.String(), "kafka", "ok").Inc()
	return nil
}
