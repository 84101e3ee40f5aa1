package notification

import (
	"context"

	"tracker/internal/entities"
	"tracker/pkg/logger"
)

// LogGateway пишет уведомления в лог, используется когда Kafka выключена.
type LogGateway struct {
	log logger.Logger
}

func NewLogGateway(log logger.Logger) *LogGateway {
	return &LogGateway{
		log: log.With(logger.NewField("component", "notification-log")),
	}
}

func (g *LogGateway) Send(_ context.Context, notification entities.Notification) error {
	fields := []logger.Field{
		logger.NewField("kind", notification.Kind.String()),
		logger.NewField("shipment", notification.ShipmentID.String()),
		logger.NewField("email", notification.Email),
	}

	switch notification.Kind {
	case entities.NotificationVerificationCode:
		// без Kafka код больше никуда не попадёт, нужен для ручной доставки в dev окружении
		fields = append(fields, logger.NewField("code", notification.Code))
	case entities.NotificationReviewLink:
		fields = append(fields, logger.NewField("review_token", notification.ReviewToken))
	default:
		g.log.Warn("unknown notification kind", fields...)
		NotificationsSentTotal.WithLabelValues(notification.Kind.String(), "log", "error").Inc()
		return nil
	}

	g.log.Info("notification", fields...)
	NotificationsSentTotal.WithLabelValues(notification.Kind.String(), "log", "ok").Inc()
	return nil
}
