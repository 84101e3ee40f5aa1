package retrier

import (
	"context"
	"errors"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// 0 - без ограничения по числу попыток, действует только MaxElapsedTime
	MaxRetries uint64

	// nil - ретраятся все ошибки
	ShouldRetry ShouldRetryFunc

	// attempt - номер неудачной попытки, next - пауза до следующей
	OnRetry func(attempt uint64, err error, next time.Duration)
}

// ConnectConfig пресет для ожидания внешней зависимости на старте: БД, брокер, соседний сервис.
func ConnectConfig() Config {
	return Config{
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  2 * time.Minute,
		Randomization:   0.5,
		Multiplier:      2,
	}
}

// RetryOn ретраит только ошибки, совпадающие с одной из targets по errors.Is.
func RetryOn(targets ...error) ShouldRetryFunc {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}
