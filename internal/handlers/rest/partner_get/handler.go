package partner_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
	"tracker/internal/service/partner"
	"tracker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	partnerEntity, err := h.service.GetPartner(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrInvalidPartnerID):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.PartnerFromEntity(*partnerEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
