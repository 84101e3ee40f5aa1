package review_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
	"tracker/internal/service/token"
	"tracker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP не гасит токен, только проверяет, что им ещё можно воспользоваться.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shipmentEntity, err := h.service.GetReviewTarget(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrEmptyToken):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.ReviewFormFromEntity(*shipmentEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
