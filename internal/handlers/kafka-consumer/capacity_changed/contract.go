//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=capacity_changed_test
package capacity_changed

import (
	"context"

	"tracker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Scheduler interface {
	RetryPending(ctx context.Context, zipCodes []string) (int, error)
}
