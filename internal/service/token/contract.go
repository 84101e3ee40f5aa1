//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=token_test
package token

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

type Repository interface {
	ReplaceVerificationCode(ctx context.Context, code entities.VerificationCode) error
	GetActiveVerificationCode(ctx context.Context, shipmentID uuid.UUID) (*entities.VerificationCode, error)
	ConsumeVerificationCode(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateReviewToken(ctx context.Context, token entities.ReviewToken) error
	GetReviewToken(ctx context.Context, tokenHash string) (*entities.ReviewToken, error)
	ConsumeReviewToken(ctx context.Context, tokenHash string, at time.Time) error
	DeleteExpired(ctx context.Context, expiredBefore, consumedBefore time.Time) (int64, error)
}

type ShipmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Shipment, error)
}

type Generator interface {
	VerificationCode() (string, error)
	ReviewToken() (string, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
