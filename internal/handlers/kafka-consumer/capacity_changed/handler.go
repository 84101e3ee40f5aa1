package capacity_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

type Handler struct {
	scheduler                Scheduler
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, scheduler Scheduler, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "partner.capacity.changed"))

	return &Handler{
		scheduler:                scheduler,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// ребалансировка или остановка группы
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно событие ёмкости.
// Возвращает true, если нужно прервать ConsumeClaim без коммита сообщения.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event capacityChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("kind", event.Kind),
		logger.NewField("partner", event.PartnerID),
		logger.NewField("zip_codes", event.ZipCodes),
		logger.NewField("offset", message.Offset),
	)

	zipCodes := make([]string, 0, len(event.ZipCodes))
	for _, zip := range event.ZipCodes {
		if normalized, ok := entities.NormalizeZipCode(zip); ok {
			zipCodes = append(zipCodes, normalized)
		}
	}
	// пустой список означал бы обход всех зон
	if len(zipCodes) == 0 {
		msgLog.Warn("event without valid zip codes skipped")
		sess.MarkMessage(message, "")
		return false
	}

	assigned, err := h.scheduler.RetryPending(ctx, zipCodes)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, apperr.ErrConcurrentModification):
			msgLog.With(
				logger.NewField("error", err),
				logger.NewField("assigned", assigned),
			).Warn("pending retry stopped on concurrent modification, next capacity event will resume it")

		default:
			msgLog.With(
				logger.NewField("error", err),
				logger.NewField("assigned", assigned),
			).Error("failed to retry pending shipments")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(logger.NewField("assigned", assigned)).Info("pending shipments retried")

	sess.MarkMessage(message, "")
	return false
}
