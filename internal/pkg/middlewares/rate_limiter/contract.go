package rate_limiter

import "tracker/pkg/logger"

// Limiter общий на весь api-подроутер, Tokens отдаёт остаток для метрики.
type Limiter interface {
	Allow() bool
	Tokens() int
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
