package partner_post

import (
	"encoding/json"
	"errors"
	"net/http"

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
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.PartnerCreate
	err := json.NewDecoder(r.Body).Decode(&createDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	partnerEntity, err := h.service.RegisterPartner(r.Context(), dto.PartnerCreateToEntity(createDTO))
	if err != nil {
		switch {
		case errors.Is(err, partner.ErrMissingRequiredFields),
			errors.Is(err, partner.ErrInvalidName),
			errors.Is(err, partner.ErrInvalidEmail),
			errors.Is(err, partner.ErrInvalidZipCode),
			errors.Is(err, partner.ErrInvalidCapacity):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.PartnerFromEntity(*partnerEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
