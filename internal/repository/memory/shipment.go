package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
)

type ShipmentRepository struct {
	store *Store
}

func NewShipmentRepository(store *Store) *ShipmentRepository {
	return &ShipmentRepository{store: store}
}

func (r *ShipmentRepository) Create(ctx context.Context, shipment *entities.Shipment) error {
	j, release := r.store.acquire(ctx)
	defer release()

	if _, ok := r.store.shipments[shipment.ID]; ok {
		return apperr.ErrConflict
	}

	r.store.shipments[shipment.ID] = cloneShipment(shipment)
	j.record(func() { delete(r.store.shipments, shipment.ID) })
	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Shipment, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	shipment, ok := r.store.shipments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return cloneShipment(shipment), nil
}

func (r *ShipmentRepository) AppendEvent(ctx context.Context, event entities.ShipmentEvent) error {
	j, release := r.store.acquire(ctx)
	defer release()

	shipment, ok := r.store.shipments[event.ShipmentID]
	if !ok {
		return apperr.ErrNotFound
	}

	r.snapshot(j, shipment)
	shipment.Timeline = append(shipment.Timeline, cloneEvent(event))
	shipment.Status = event.Status
	shipment.UpdatedAt = event.CreatedAt
	return nil
}

func (r *ShipmentRepository) SetEstimatedDelivery(ctx context.Context, id uuid.UUID, at time.Time) error {
	j, release := r.store.acquire(ctx)
	defer release()

	shipment, ok := r.store.shipments[id]
	if !ok {
		return apperr.ErrNotFound
	}

	r.snapshot(j, shipment)
	shipment.EstimatedDelivery = at
	return nil
}

// AssignPartner закрепляет партнёра только за ожидающей назначения отправкой.
func (r *ShipmentRepository) AssignPartner(ctx context.Context, shipmentID, partnerID uuid.UUID) error {
	j, release := r.store.acquire(ctx)
	defer release()

	shipment, ok := r.store.shipments[shipmentID]
	if !ok {
		return apperr.ErrNotFound
	}
	if !shipment.IsPending() {
		return apperr.ErrConflict
	}

	r.snapshot(j, shipment)
	id := partnerID
	shipment.PartnerID = &id
	return nil
}

func (r *ShipmentRepository) ListPending(ctx context.Context, query entities.PendingQuery) ([]entities.Shipment, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	pending := make([]entities.Shipment, 0)
	for _, shipment := range r.store.shipments {
		if !shipment.IsPending() {
			continue
		}
		if len(query.ZipCodes) > 0 && !slices.Contains(query.ZipCodes, shipment.Destination) {
			continue
		}
		if query.After != nil && comparePending(shipment, query.After) <= 0 {
			continue
		}
		pending = append(pending, *cloneShipment(shipment))
	}

	slices.SortFunc(pending, func(a, b entities.Shipment) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), compareUUID(a.ID, b.ID))
	})

	if query.Limit > 0 && len(pending) > query.Limit {
		pending = pending[:query.Limit]
	}
	return pending, nil
}

func comparePending(s *entities.Shipment, cursor *entities.PendingCursor) int {
	return cmp.Or(s.CreatedAt.Compare(cursor.CreatedAt), compareUUID(s.ID, cursor.ID))
}

func (r *ShipmentRepository) List(ctx context.Context, filter entities.ShipmentFilter) (*entities.ShipmentPage, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	page := filter.Page.Normalize()

	matched := make([]entities.Shipment, 0)
	for _, shipment := range r.store.shipments {
		if filter.PartnerID != nil && (shipment.PartnerID == nil || *shipment.PartnerID != *filter.PartnerID) {
			continue
		}
		if filter.Tag != nil && !shipment.HasTag(*filter.Tag) {
			continue
		}
		matched = append(matched, *cloneShipment(shipment))
	}

	slices.SortFunc(matched, func(a, b entities.Shipment) int {
		c := cmp.Or(a.CreatedAt.Compare(b.CreatedAt), compareUUID(a.ID, b.ID))
		if page.Order == entities.SortDesc {
			return -c
		}
		return c
	})

	total := len(matched)
	from := min(page.Offset(), total)
	to := min(from+page.PageSize, total)

	return entities.NewShipmentPage(matched[from:to], page, total), nil
}

// AddTag возвращает уже существующий тег с тем же именем вместо дубля.
func (r *ShipmentRepository) AddTag(ctx context.Context, shipmentID uuid.UUID, tag entities.Tag) (*entities.Tag, error) {
	j, release := r.store.acquire(ctx)
	defer release()

	shipment, ok := r.store.shipments[shipmentID]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	for _, existing := range shipment.Tags {
		if existing.Name == tag.Name {
			found := existing
			return &found, nil
		}
	}

	r.snapshot(j, shipment)
	shipment.Tags = append(shipment.Tags, tag)
	return &tag, nil
}

func (r *ShipmentRepository) RemoveTag(ctx context.Context, shipmentID uuid.UUID, name entities.TagName) (bool, error) {
	j, release := r.store.acquire(ctx)
	defer release()

	shipment, ok := r.store.shipments[shipmentID]
	if !ok {
		return false, apperr.ErrNotFound
	}

	idx := slices.IndexFunc(shipment.Tags, func(t entities.Tag) bool { return t.Name == name })
	if idx < 0 {
		return false, nil
	}

	r.snapshot(j, shipment)
	shipment.Tags = slices.Delete(shipment.Tags, idx, idx+1)
	return true, nil
}

func (r *ShipmentRepository) CreateReview(ctx context.Context, review entities.Review) error {
	j, release := r.store.acquire(ctx)
	defer release()

	if _, ok := r.store.shipments[review.ShipmentID]; !ok {
		return apperr.ErrNotFound
	}
	for _, existing := range r.store.reviews {
		if existing.ShipmentID == review.ShipmentID {
			return apperr.ErrConflict
		}
	}

	review.Comment = clonePtr(review.Comment)
	r.store.reviews[review.ID] = review
	j.record(func() { delete(r.store.reviews, review.ID) })
	return nil
}

// snapshot запоминает состояние отправки до изменения, откат восстанавливает запись целиком.
func (r *ShipmentRepository) snapshot(j *journal, shipment *entities.Shipment) {
	prev := cloneShipment(shipment)
	j.record(func() { r.store.shipments[prev.ID] = prev })
}
