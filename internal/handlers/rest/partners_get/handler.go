package partners_get

import (
	"encoding/json"
	"net/http"

	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
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
	partnerEntities, err := h.service.GetPartners(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	partnerDTOs := make([]dto.Partner, len(partnerEntities))
	for i, p := range partnerEntities {
		partnerDTOs[i] = dto.PartnerFromEntity(p)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(partnerDTOs)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
