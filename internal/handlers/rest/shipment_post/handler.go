package shipment_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
	"tracker/internal/service/shipment"
	"tracker/internal/service/tag"
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
	var createDTO dto.ShipmentCreate
	err := json.NewDecoder(r.Body).Decode(&createDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shipmentEntity, err := h.service.CreateShipment(r.Context(), dto.ShipmentCreateToEntity(createDTO))
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrMissingRequiredFields),
			errors.Is(err, shipment.ErrInvalidContent),
			errors.Is(err, shipment.ErrInvalidWeight),
			errors.Is(err, shipment.ErrInvalidDestination),
			errors.Is(err, shipment.ErrInvalidEmail),
			errors.Is(err, shipment.ErrInvalidPhone),
			errors.Is(err, shipment.ErrInvalidTag),
			errors.Is(err, tag.ErrUnknownTag):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.ShipmentFromEntity(*shipmentEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
