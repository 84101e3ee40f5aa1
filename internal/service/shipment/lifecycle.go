package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

// transitionResult собирает побочные эффекты, которые отправляются только после коммита.
type transitionResult struct {
	shipment      *entities.Shipment
	notifications []entities.Notification
	capacity      *entities.CapacityEvent
}

// UpdateShipment применяет переход статуса и/или добавляет событие с новым местоположением.
// Обновления одной отправки строго упорядочены.
func (s *Service) UpdateShipment(ctx context.Context, update entities.ShipmentUpdate) (*entities.Shipment, error) {
	if update.ID == uuid.Nil {
		return nil, ErrInvalidShipmentID
	}
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	return s.transition(ctx, update)
}

// CancelShipment переводит отправку в cancelled из placed или processing и сразу
// освобождает зарезервированную ёмкость.
func (s *Service) CancelShipment(ctx context.Context, id uuid.UUID) (*entities.Shipment, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidShipmentID
	}

	cancelled := entities.StatusCancelled
	return s.transition(ctx, entities.ShipmentUpdate{ID: id, Status: &cancelled})
}

func (s *Service) transition(ctx context.Context, update entities.ShipmentUpdate) (*entities.Shipment, error) {
	unlock := s.locker.Lock(update.ID.String())
	defer unlock()

	var result *transitionResult
	err := s.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := s.repository.GetByID(ctx, update.ID)
			if err != nil {
				return fmt.Errorf("get shipment: %w", err)
			}

			result, err = s.applyTransition(ctx, current, update)
			return err
		})
	})
	if err != nil {
		TransitionsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	s.publish(ctx, result)
	return result.shipment, nil
}

// applyTransition выполняется внутри транзакции: событие, коды и освобождение ёмкости
// применяются вместе или не применяются вовсе.
func (s *Service) applyTransition(
	ctx context.Context,
	shipment *entities.Shipment,
	update entities.ShipmentUpdate,
) (*transitionResult, error) {
	from := shipment.Status
	to := from
	if update.Status != nil {
		to = *update.Status
	}

	// для delivered код проверяется раньше статуса: без действующего кода
	// ответ всегда ErrMissingOrInvalidEvidence
	if update.Status != nil && to == entities.StatusDelivered {
		if update.VerificationCode == nil {
			return nil, fmt.Errorf("verification code required: %w", apperr.ErrMissingOrInvalidEvidence)
		}
		if err := s.tokens.ConsumeVerificationCode(ctx, shipment.ID, *update.VerificationCode); err != nil {
			return nil, err
		}
	}

	if from.IsTerminal() {
		return nil, fmt.Errorf("shipment is %s: %w", from, apperr.ErrInvalidTransition)
	}
	if update.Status != nil && !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, apperr.ErrInvalidTransition)
	}
	// без партнёра отправка ждёт назначения в placed, вперёд её пускать нельзя
	if to != from && to != entities.StatusCancelled && shipment.PartnerID == nil {
		return nil, fmt.Errorf("%s -> %s: no partner assigned: %w", from, to, apperr.ErrInvalidTransition)
	}

	result := &transitionResult{shipment: shipment}
	now := s.eventTime(shipment)

	if update.EstimatedDelivery != nil {
		at := update.EstimatedDelivery.UTC()
		if !at.After(shipment.CreatedAt) {
			return nil, ErrInvalidEstimatedDelivery
		}
		if err := s.repository.SetEstimatedDelivery(ctx, shipment.ID, at); err != nil {
			return nil, fmt.Errorf("set estimated delivery: %w", err)
		}
		shipment.EstimatedDelivery = at
	}

	if update.Status == nil && update.Location == nil && update.Description == nil {
		return result, nil
	}

	event := entities.ShipmentEvent{
		ID:          uuid.New(),
		ShipmentID:  shipment.ID,
		Status:      to,
		Location:    normalizedLocation(update.Location),
		Description: update.Description,
		CreatedAt:   now,
	}
	if err := s.repository.AppendEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	shipment.Timeline = append(shipment.Timeline, event)
	shipment.Status = to
	shipment.UpdatedAt = now

	if to == from {
		return result, nil
	}

	switch to {
	case entities.StatusOutForDelivery:
		code, err := s.tokens.IssueVerificationCode(ctx, shipment.ID)
		if err != nil {
			return nil, fmt.Errorf("issue verification code: %w", err)
		}
		result.notifications = append(result.notifications, entities.Notification{
			Kind:       entities.NotificationVerificationCode,
			ShipmentID: shipment.ID,
			Email:      shipment.ClientContactEmail,
			Phone:      shipment.ClientContactPhone,
			Code:       code.Code,
			CreatedAt:  now,
		})
	case entities.StatusDelivered:
		token, err := s.tokens.IssueReviewToken(ctx, shipment.ID)
		if err != nil {
			return nil, fmt.Errorf("issue review token: %w", err)
		}
		expiresAt := token.ExpiresAt
		result.notifications = append(result.notifications, entities.Notification{
			Kind:        entities.NotificationReviewLink,
			ShipmentID:  shipment.ID,
			Email:       shipment.ClientContactEmail,
			Phone:       shipment.ClientContactPhone,
			ReviewToken: token.Token,
			ExpiresAt:   &expiresAt,
			CreatedAt:   now,
		})
	case entities.StatusReturned:
		// код, выданный на out_for_delivery, больше не должен подтверждать вручение
		if err := s.tokens.RevokeVerificationCode(ctx, shipment.ID); err != nil {
			return nil, err
		}
	}

	if to.IsTerminal() && shipment.PartnerID != nil {
		event, err := s.partners.ReleaseCapacity(ctx, *shipment.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("release capacity: %w", err)
		}
		result.capacity = event
	}

	TransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
	return result, nil
}

// eventTime не даёт новому событию оказаться раньше последнего в ленте.
func (s *Service) eventTime(shipment *entities.Shipment) time.Time {
	now := s.now()
	if latest := shipment.LatestEvent(); latest != nil && !now.After(latest.CreatedAt) {
		now = latest.CreatedAt.Add(time.Microsecond)
	}
	return now
}

func (s *Service) publish(ctx context.Context, result *transitionResult) {
	for _, notification := range result.notifications {
		if err := s.notifications.Send(ctx, notification); err != nil {
			s.log.Warn("notification not sent",
				logger.NewField("shipment", notification.ShipmentID.String()),
				logger.NewField("kind", notification.Kind.String()),
				logger.NewField("error", err),
			)
		}
	}

	if result.capacity != nil {
		s.capacity.Notify(ctx, *result.capacity)
	}

	s.log.Info("shipment updated",
		logger.NewField("shipment", result.shipment.ID.String()),
		logger.NewField("status", result.shipment.Status.String()),
	)
}

func normalizedLocation(location *string) *string {
	if location == nil {
		return nil
	}
	zip, _ := entities.NormalizeZipCode(*location)
	return &zip
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, apperr.ErrMissingOrInvalidEvidence):
		return "invalid_evidence"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrConcurrentModification):
		return "concurrent_modification"
	default:
		return "other"
	}
}
