package shipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

const DefaultEstimatedDeliveryWindow = 72 * time.Hour

type Config struct {
	EstimatedDeliveryWindow time.Duration
}

type Dependencies struct {
	Repository    Repository
	Tags          TagEngine
	Tokens        TokenIssuer
	Partners      PartnerRegistry
	Scheduler     Scheduler
	Capacity      CapacityNotifier
	Notifications NotificationSender
	Locker        Locker
	TxManager     TxManager
	Retrier       Retrier
}

type Service struct {
	repository    Repository
	tags          TagEngine
	tokens        TokenIssuer
	partners      PartnerRegistry
	scheduler     Scheduler
	capacity      CapacityNotifier
	notifications NotificationSender
	locker        Locker
	txManager     TxManager
	retrier       Retrier
	log           logger.Logger
	cfg           Config
	now           func() time.Time
}

func New(deps Dependencies, log logger.Logger, cfg Config) *Service {
	if cfg.EstimatedDeliveryWindow <= 0 {
		cfg.EstimatedDeliveryWindow = DefaultEstimatedDeliveryWindow
	}

	return &Service{
		repository:    deps.Repository,
		tags:          deps.Tags,
		tokens:        deps.Tokens,
		partners:      deps.Partners,
		scheduler:     deps.Scheduler,
		capacity:      deps.Capacity,
		notifications: deps.Notifications,
		locker:        deps.Locker,
		txManager:     deps.TxManager,
		retrier:       deps.Retrier,
		log:           log.With(logger.NewField("component", "shipment")),
		cfg:           cfg,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetClock подменяет источник времени.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreateShipment сохраняет отправку в статусе placed и делает одну попытку назначения.
// Если свободного партнёра нет, отправка остаётся в placed до события о ёмкости.
func (s *Service) CreateShipment(ctx context.Context, create entities.ShipmentCreate) (*entities.Shipment, error) {
	zip, err := validateCreate(create)
	if err != nil {
		return nil, err
	}

	now := s.now()
	id := uuid.New()
	shipment := &entities.Shipment{
		ID:                 id,
		Content:            strings.TrimSpace(*create.Content),
		Weight:             *create.Weight,
		Destination:        zip,
		ClientContactEmail: *create.ClientContactEmail,
		ClientContactPhone: create.ClientContactPhone,
		EstimatedDelivery:  now.Add(s.cfg.EstimatedDeliveryWindow),
		Status:             entities.StatusPlaced,
		Tags:               []entities.Tag{},
		Timeline: []entities.ShipmentEvent{{
			ID:         uuid.New(),
			ShipmentID: id,
			Status:     entities.StatusPlaced,
			CreatedAt:  now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repository.Create(ctx, shipment); err != nil {
			return fmt.Errorf("create shipment: %w", err)
		}

		if len(create.Tags) > 0 {
			tags, err := s.tags.ApplyTags(ctx, shipment.ID, create.Tags)
			if err != nil {
				return fmt.Errorf("apply tags: %w", err)
			}
			shipment.Tags = tags
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ShipmentsCreatedTotal.Inc()
	s.log.Info("shipment created",
		logger.NewField("shipment", shipment.ID.String()),
		logger.NewField("destination", shipment.Destination),
	)

	partner, err := s.scheduler.Assign(ctx, shipment.ID)
	switch {
	case err == nil:
		shipment.PartnerID = &partner.ID
	case errors.Is(err, apperr.ErrCapacityExhausted):
		s.log.Info("assignment deferred",
			logger.NewField("shipment", shipment.ID.String()),
			logger.NewField("destination", shipment.Destination),
		)
	default:
		// отправку мог забрать параллельный обход планировщика
		fresh, getErr := s.repository.GetByID(ctx, shipment.ID)
		if getErr == nil && fresh.PartnerID != nil {
			return fresh, nil
		}
		s.log.Warn("assignment failed, shipment stays pending",
			logger.NewField("shipment", shipment.ID.String()),
			logger.NewField("error", err),
		)
	}

	return shipment, nil
}

func (s *Service) GetShipment(ctx context.Context, id uuid.UUID) (*entities.Shipment, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidShipmentID
	}

	shipment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return shipment, nil
}

func (s *Service) ListShipments(ctx context.Context, filter entities.ShipmentFilter) (*entities.ShipmentPage, error) {
	if filter.Tag != nil && !filter.Tag.IsValid() {
		return nil, ErrInvalidTag
	}
	filter.Page = filter.Page.Normalize()

	page, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return page, nil
}

func (s *Service) ListPartnerShipments(ctx context.Context, partnerID uuid.UUID, page entities.PageRequest) (*entities.ShipmentPage, error) {
	if partnerID == uuid.Nil {
		return nil, ErrInvalidPartnerID
	}

	if _, err := s.partners.GetPartner(ctx, partnerID); err != nil {
		return nil, err
	}

	return s.ListShipments(ctx, entities.ShipmentFilter{PartnerID: &partnerID, Page: page})
}
