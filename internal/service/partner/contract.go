//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partner_test
package partner

import (
	"context"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, partner *entities.DeliveryPartner) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DeliveryPartner, error)
	GetAll(ctx context.Context) ([]entities.DeliveryPartner, error)
	ListEligible(ctx context.Context, zip string) ([]entities.DeliveryPartner, error)
	CompareAndSwap(ctx context.Context, partner entities.DeliveryPartner, expectedVersion int64) (*entities.DeliveryPartner, error)
}

type CapacityNotifier interface {
	Notify(ctx context.Context, event entities.CapacityEvent)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
