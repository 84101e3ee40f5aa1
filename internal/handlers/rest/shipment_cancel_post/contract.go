//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_cancel_post_test
package shipment_cancel_post

import (
	"context"

	"github.com/google/uuid"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CancelShipment(ctx context.Context, id uuid.UUID) (*entities.Shipment, error)
}
