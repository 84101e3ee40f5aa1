//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partner_put_test
package partner_put

import (
	"context"

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
	UpdatePartner(ctx context.Context, modify entities.PartnerModify) (*entities.DeliveryPartner, error)
}
