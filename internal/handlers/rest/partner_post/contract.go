//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partner_post_test
package partner_post

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
	RegisterPartner(ctx context.Context, modify entities.PartnerModify) (*entities.DeliveryPartner, error)
}
