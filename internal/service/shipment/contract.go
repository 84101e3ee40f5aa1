//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_test
package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, shipment *entities.Shipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Shipment, error)
	AppendEvent(ctx context.Context, event entities.ShipmentEvent) error
	SetEstimatedDelivery(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, filter entities.ShipmentFilter) (*entities.ShipmentPage, error)
	CreateReview(ctx context.Context, review entities.Review) error
}

type TagEngine interface {
	ApplyTags(ctx context.Context, shipmentID uuid.UUID, names []entities.TagName) ([]entities.Tag, error)
}

type TokenIssuer interface {
	IssueVerificationCode(ctx context.Context, shipmentID uuid.UUID) (*entities.VerificationCode, error)
	ConsumeVerificationCode(ctx context.Context, shipmentID uuid.UUID, code string) error
	RevokeVerificationCode(ctx context.Context, shipmentID uuid.UUID) error
	IssueReviewToken(ctx context.Context, shipmentID uuid.UUID) (*entities.ReviewToken, error)
	ConsumeReviewToken(ctx context.Context, token string) (*entities.ReviewToken, error)
	LookupReviewToken(ctx context.Context, token string) (*entities.ReviewToken, error)
}

type PartnerRegistry interface {
	GetPartner(ctx context.Context, id uuid.UUID) (*entities.DeliveryPartner, error)
	ReleaseCapacity(ctx context.Context, partnerID uuid.UUID) (*entities.CapacityEvent, error)
}

type Scheduler interface {
	Assign(ctx context.Context, shipmentID uuid.UUID) (*entities.DeliveryPartner, error)
}

type CapacityNotifier interface {
	Notify(ctx context.Context, event entities.CapacityEvent)
}

type NotificationSender interface {
	Send(ctx context.Context, notification entities.Notification) error
}

type Locker interface {
	Lock(key string) func()
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
