package httperr

import (
	"errors"
	"net/http"

	"tracker/internal/apperr"
	"tracker/pkg/logger"
)

// RetryAfter в секундах, отдаётся вместе с 503 при конкурентном изменении.
const RetryAfter = "1"

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

// Status переводит доменную ошибку в HTTP статус. Ошибки валидации каждый
// обработчик разбирает сам до вызова Status.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrMissingOrInvalidEvidence):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrTokenExpiredOrConsumed):
		return http.StatusGone
	case errors.Is(err, apperr.ErrConcurrentModification):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Write(w http.ResponseWriter, log errorLogger, err error) {
	status := Status(err)
	switch status {
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", RetryAfter)
	case http.StatusInternalServerError:
		log.Error("request failed", logger.NewField("error", err))
	}
	w.WriteHeader(status)
}
