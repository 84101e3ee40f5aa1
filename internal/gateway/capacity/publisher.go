package capacity

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

var CapacityEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "capacity_events_published_total",
		Help: "Total number of partner capacity events published to Kafka",
	},
	[]string{"result"},
)

// Message формат события в топике ёмкости, его читает воркер capacity_changed.
type Message struct {
	Kind       string    `json:"kind"`
	PartnerID  string    `json:"partner_id"`
	ZipCodes   []string  `json:"zip_codes"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher дублирует события ёмкости в Kafka через асинхронный producer.
// Notify не ждёт брокер: при переполненном буфере событие отбрасывается,
// планировщик процесса его уже получил напрямую.
type Publisher struct {
	producer asyncProducer
	topic    string
	log      logger.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func NewPublisher(producer asyncProducer, topic string, log logger.Logger) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		log:      log.With(logger.NewField("component", "capacity-publisher")),
		done:     make(chan struct{}),
	}
	go p.drain()
	return p
}

func (p *Publisher) Notify(_ context.Context, event entities.CapacityEvent) {
	payload, err := json.Marshal(Message{
		Kind:       event.Kind.String(),
		PartnerID:  event.PartnerID.String(),
		ZipCodes:   event.ZipCodes,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		p.log.Error("marshal capacity event", logger.NewField("error", err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PartnerID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	select {
	case p.producer.Input() <- msg:
	default:
		CapacityEventsPublishedTotal.WithLabelValues("dropped").Inc()
		p.log.Warn("capacity event dropped, producer buffer is full",
			logger.NewField("kind", event.Kind.String()),
			logger.NewField("partner", event.PartnerID.String()),
		)
	}
}

// Close закрывает producer и дожидается разбора оставшихся ответов брокера.
func (p *Publisher) Close() error {
	p.closeOnce.Do(p.producer.AsyncClose)
	<-p.done
	return nil
}

func (p *Publisher) drain() {
	defer close(p.done)

	successes, errs := p.producer.Successes(), p.producer.Errors()
	for successes != nil || errs != nil {
		select {
		case _, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			CapacityEventsPublishedTotal.WithLabelValues("ok").Inc()

		case perr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			CapacityEventsPublishedTotal.WithLabelValues("error").Inc()
			p.log.Warn("capacity event publish failed",
				logger.NewField("topic", perr.Msg.Topic),
				logger.NewField("error", perr.Err),
			)
		}
	}
}
