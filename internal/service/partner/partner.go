package partner

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

// Registry владеет зонами обслуживания, ёмкостью и текущей нагрузкой партнёров.
// Нагрузка меняется только через ReserveCapacity и ReleaseCapacity.
type Registry struct {
	repository Repository
	notifier   CapacityNotifier
	txManager  TxManager
	retrier    Retrier
	log        logger.Logger
	now        func() time.Time
}

func New(
	repository Repository,
	notifier CapacityNotifier,
	txManager TxManager,
	retrier Retrier,
	log logger.Logger,
) *Registry {
	return &Registry{
		repository: repository,
		notifier:   notifier,
		txManager:  txManager,
		retrier:    retrier,
		log:        log.With(logger.NewField("component", "partner-registry")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *Registry) RegisterPartner(ctx context.Context, modify entities.PartnerModify) (*entities.DeliveryPartner, error) {
	if modify.Name == nil || modify.Email == nil || modify.MaxCapacity == nil {
		return nil, ErrMissingRequiredFields
	}
	if modify.ID != nil && *modify.ID == uuid.Nil {
		return nil, ErrInvalidPartnerID
	}
	if !isValidName(*modify.Name) {
		return nil, ErrInvalidName
	}
	if !isValidEmail(*modify.Email) {
		return nil, ErrInvalidEmail
	}
	if !isValidCapacity(*modify.MaxCapacity) {
		return nil, ErrInvalidCapacity
	}

	zipCodes := []string{}
	if modify.ZipCodes != nil {
		normalized, ok := normalizeZipCodes(*modify.ZipCodes)
		if !ok {
			return nil, ErrInvalidZipCode
		}
		zipCodes = normalized
	}

	id := uuid.New()
	if modify.ID != nil {
		id = *modify.ID
	}

	now := r.now()
	partner := &entities.DeliveryPartner{
		ID:          id,
		Name:        strings.TrimSpace(*modify.Name),
		Email:       *modify.Email,
		ZipCodes:    zipCodes,
		MaxCapacity: *modify.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.repository.Create(ctx, partner)
	if err != nil {
		return nil, fmt.Errorf("create partner: %w", err)
	}

	r.log.Info("partner registered",
		logger.NewField("partner", partner.ID.String()),
		logger.NewField("zip_codes", partner.ZipCodes),
		logger.NewField("capacity", partner.MaxCapacity),
	)

	if len(partner.ZipCodes) > 0 && partner.HasCapacity() {
		r.notifier.Notify(ctx, entities.CapacityEvent{
			Kind:       entities.CapacityCoverageAdded,
			PartnerID:  partner.ID,
			ZipCodes:   slices.Clone(partner.ZipCodes),
			OccurredAt: now,
		})
	}

	return partner, nil
}

// UpdatePartner меняет имя, email, зоны и ёмкость. Ёмкость можно опустить ниже
// текущей нагрузки: партнёр просто перестаёт получать новые назначения.
func (r *Registry) UpdatePartner(ctx context.Context, modify entities.PartnerModify) (*entities.DeliveryPartner, error) {
	if modify.ID == nil || *modify.ID == uuid.Nil {
		return nil, ErrInvalidPartnerID
	}
	if modify.Name == nil &&
		modify.Email == nil &&
		modify.ZipCodes == nil &&
		modify.MaxCapacity == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}
	if modify.Name != nil && !isValidName(*modify.Name) {
		return nil, ErrInvalidName
	}
	if modify.Email != nil && !isValidEmail(*modify.Email) {
		return nil, ErrInvalidEmail
	}
	if modify.MaxCapacity != nil && !isValidCapacity(*modify.MaxCapacity) {
		return nil, ErrInvalidCapacity
	}

	var zipCodes []string
	if modify.ZipCodes != nil {
		normalized, ok := normalizeZipCodes(*modify.ZipCodes)
		if !ok {
			return nil, ErrInvalidZipCode
		}
		zipCodes = normalized
	}

	var (
		updated *entities.DeliveryPartner
		event   *entities.CapacityEvent
	)
	err := r.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return r.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := r.repository.GetByID(ctx, *modify.ID)
			if err != nil {
				return fmt.Errorf("get partner: %w", err)
			}

			next := *current
			if modify.Name != nil {
				next.Name = strings.TrimSpace(*modify.Name)
			}
			if modify.Email != nil {
				next.Email = *modify.Email
			}
			if modify.ZipCodes != nil {
				next.ZipCodes = zipCodes
			}
			if modify.MaxCapacity != nil {
				next.MaxCapacity = *modify.MaxCapacity
			}
			next.UpdatedAt = r.now()

			stored, err := r.repository.CompareAndSwap(ctx, next, current.Version)
			if err != nil {
				return fmt.Errorf("store partner: %w", err)
			}

			updated = stored
			event = capacityEvent(current, stored, next.UpdatedAt)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("partner updated",
		logger.NewField("partner", updated.ID.String()),
		logger.NewField("zip_codes", updated.ZipCodes),
		logger.NewField("capacity", updated.MaxCapacity),
		logger.NewField("load", updated.CurrentLoad),
	)

	if event != nil {
		r.notifier.Notify(ctx, *event)
	}
	return updated, nil
}

func (r *Registry) GetPartner(ctx context.Context, id uuid.UUID) (*entities.DeliveryPartner, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidPartnerID
	}

	partner, err := r.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return partner, nil
}

func (r *Registry) GetPartners(ctx context.Context) ([]entities.DeliveryPartner, error) {
	partners, err := r.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get partners: %w", err)
	}
	return partners, nil
}

// EligiblePartners возвращает партнёров, обслуживающих zip и имеющих свободную ёмкость.
func (r *Registry) EligiblePartners(ctx context.Context, zip string) ([]entities.DeliveryPartner, error) {
	partners, err := r.repository.ListEligible(ctx, zip)
	if err != nil {
		return nil, fmt.Errorf("list eligible partners: %w", err)
	}
	return partners, nil
}

// ReserveCapacity увеличивает нагрузку на единицу относительно прочитанной версии partner.
// Устаревшая версия даёт apperr.ErrConcurrentModification, повтор делает вызывающий.
func (r *Registry) ReserveCapacity(ctx context.Context, partner entities.DeliveryPartner) (*entities.DeliveryPartner, error) {
	if !partner.HasCapacity() {
		return nil, apperr.ErrCapacityExhausted
	}

	next := partner
	next.CurrentLoad++
	next.UpdatedAt = r.now()

	stored, err := r.repository.CompareAndSwap(ctx, next, partner.Version)
	if err != nil {
		return nil, fmt.Errorf("reserve capacity: %w", err)
	}
	return stored, nil
}

// ReleaseCapacity снимает единицу нагрузки. Событие возвращается, только если у партнёра
// после этого появилась свободная ёмкость; отправлять его нужно после коммита.
func (r *Registry) ReleaseCapacity(ctx context.Context, partnerID uuid.UUID) (*entities.CapacityEvent, error) {
	current, err := r.repository.GetByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}

	if current.CurrentLoad == 0 {
		r.log.Warn("release requested for partner without load",
			logger.NewField("partner", partnerID.String()),
		)
		return nil, nil
	}

	next := *current
	next.CurrentLoad--
	next.UpdatedAt = r.now()

	stored, err := r.repository.CompareAndSwap(ctx, next, current.Version)
	if err != nil {
		return nil, fmt.Errorf("release capacity: %w", err)
	}

	if !stored.HasCapacity() {
		return nil, nil
	}
	return &entities.CapacityEvent{
		Kind:       entities.CapacityLoadFreed,
		PartnerID:  stored.ID,
		ZipCodes:   slices.Clone(stored.ZipCodes),
		OccurredAt: next.UpdatedAt,
	}, nil
}

func capacityEvent(before, after *entities.DeliveryPartner, at time.Time) *entities.CapacityEvent {
	if !after.HasCapacity() {
		return nil
	}

	if after.MaxCapacity > before.MaxCapacity {
		return &entities.CapacityEvent{
			Kind:       entities.CapacityRaised,
			PartnerID:  after.ID,
			ZipCodes:   slices.Clone(after.ZipCodes),
			OccurredAt: at,
		}
	}

	added := addedZipCodes(before.ZipCodes, after.ZipCodes)
	if len(added) == 0 {
		return nil
	}
	return &entities.CapacityEvent{
		Kind:       entities.CapacityCoverageAdded,
		PartnerID:  after.ID,
		ZipCodes:   added,
		OccurredAt: at,
	}
}
