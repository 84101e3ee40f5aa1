//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=scheduler_test
package scheduler

import (
	"context"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

type ShipmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Shipment, error)
	AssignPartner(ctx context.Context, shipmentID, partnerID uuid.UUID) error
	ListPending(ctx context.Context, query entities.PendingQuery) ([]entities.Shipment, error)
}

type PartnerRegistry interface {
	EligiblePartners(ctx context.Context, zip string) ([]entities.DeliveryPartner, error)
	ReserveCapacity(ctx context.Context, partner entities.DeliveryPartner) (*entities.DeliveryPartner, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
