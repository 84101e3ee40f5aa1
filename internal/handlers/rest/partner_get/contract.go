//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partner_get_test
package partner_get

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
	GetPartner(ctx context.Context, id uuid.UUID) (*entities.DeliveryPartner, error)
}
