package kafka

import (
	"context"
	"fmt"
	"slices"

	"github.com/IBM/sarama"
	"tracker/pkg/logger"
	"tracker/pkg/retrier/backoff_adapter"
)

// pingKafka ждёт, пока брокеры ответят и все topics появятся.
// Топики создаёт инфраструктура, сервис их только ждёт.
func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config, topics []string) error {
	return backoff_adapter.Connect(ctx, log, "kafka", func(context.Context) error {
		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("close kafka ping client", logger.NewField("error", err))
			}
		}()

		existing, err := client.Topics()
		if err != nil {
			return err
		}
		if missing := missingTopics(existing, topics); len(missing) > 0 {
			return fmt.Errorf("topics not found: %v", missing)
		}
		return nil
	})
}

func missingTopics(existing, required []string) []string {
	var missing []string
	for _, topic := range required {
		if !slices.Contains(existing, topic) {
			missing = append(missing, topic)
		}
	}
	return missing
}
