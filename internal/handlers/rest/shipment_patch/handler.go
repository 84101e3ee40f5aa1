package shipment_patch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
	"tracker/internal/service/shipment"
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

// ServeHTTP принимает новый статус и/или данные о ходе доставки. Для перевода в
// delivered в теле ожидается verification_code.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var updateDTO dto.ShipmentUpdate
	err = json.NewDecoder(r.Body).Decode(&updateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shipmentEntity, err := h.service.UpdateShipment(r.Context(), dto.ShipmentUpdateToEntity(id, updateDTO))
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrInvalidShipmentID),
			errors.Is(err, shipment.ErrInvalidStatus),
			errors.Is(err, shipment.ErrInvalidLocation),
			errors.Is(err, shipment.ErrInvalidDescription),
			errors.Is(err, shipment.ErrInvalidEstimatedDelivery),
			errors.Is(err, shipment.ErrNoChanges):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.ShipmentFromEntity(*shipmentEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
