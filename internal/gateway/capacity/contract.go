package capacity

import (
	"context"

	"github.com/IBM/sarama"
	"tracker/internal/entities"
)

type Notifier interface {
	Notify(ctx context.Context, event entities.CapacityEvent)
}

type asyncProducer interface {
	Input() chan<- *sarama.ProducerMessage
	Successes() <-chan *sarama.ProducerMessage
	Errors() <-chan *sarama.ProducerError
	AsyncClose()
}
