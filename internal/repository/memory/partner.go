package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
	"tracker/internal/apperr"
	"tracker/internal/entities"
)

type PartnerRepository struct {
	store *Store
}

func NewPartnerRepository(store *Store) *PartnerRepository {
	return &PartnerRepository{store: store}
}

func (r *PartnerRepository) Create(ctx context.Context, partner *entities.DeliveryPartner) error {
	j, release := r.store.acquire(ctx)
	defer release()

	if _, ok := r.store.partners[partner.ID]; ok {
		return apperr.ErrConflict
	}
	if r.emailTaken(partner.Email, partner.ID) {
		return apperr.ErrConflict
	}

	r.store.partners[partner.ID] = clonePartner(partner)
	j.record(func() { delete(r.store.partners, partner.ID) })
	return nil
}

func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DeliveryPartner, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	partner, ok := r.store.partners[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return clonePartner(partner), nil
}

func (r *PartnerRepository) GetAll(ctx context.Context) ([]entities.DeliveryPartner, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	partners := make([]entities.DeliveryPartner, 0, len(r.store.partners))
	for _, partner := range r.store.partners {
		partners = append(partners, *clonePartner(partner))
	}
	slices.SortFunc(partners, func(a, b entities.DeliveryPartner) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), compareUUID(a.ID, b.ID))
	})
	return partners, nil
}

func (r *PartnerRepository) ListEligible(ctx context.Context, zip string) ([]entities.DeliveryPartner, error) {
	_, release := r.store.acquire(ctx)
	defer release()

	eligible := make([]entities.DeliveryPartner, 0)
	for _, partner := range r.store.partners {
		if partner.Serves(zip) && partner.HasCapacity() {
			eligible = append(eligible, *clonePartner(partner))
		}
	}
	slices.SortFunc(eligible, func(a, b entities.DeliveryPartner) int {
		return cmp.Or(
			cmp.Compare(a.CurrentLoad, b.CurrentLoad),
			a.CreatedAt.Compare(b.CreatedAt),
			compareUUID(a.ID, b.ID),
		)
	})
	return eligible, nil
}

// CompareAndSwap записывает partner, только если сохранённая версия равна expectedVersion.
func (r *PartnerRepository) CompareAndSwap(ctx context.Context, partner entities.DeliveryPartner, expectedVersion int64) (*entities.DeliveryPartner, error) {
	j, release := r.store.acquire(ctx)
	defer release()

	stored, ok := r.store.partners[partner.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return nil, apperr.ErrConcurrentModification
	}
	if r.emailTaken(partner.Email, partner.ID) {
		return nil, apperr.ErrConflict
	}

	prev := stored
	next := clonePartner(&partner)
	next.Version = expectedVersion + 1
	next.CreatedAt = stored.CreatedAt
	r.store.partners[partner.ID] = next
	j.record(func() { r.store.partners[prev.ID] = prev })

	return clonePartner(next), nil
}

func (r *PartnerRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, partner := range r.store.partners {
		if id != except && partner.Email == email {
			return true
		}
	}
	return false
}
