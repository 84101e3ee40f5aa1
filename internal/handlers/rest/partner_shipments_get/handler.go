package partner_shipments_get

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	partnerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	pageRequest, err := dto.PageRequestFromQuery(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	page, err := h.service.ListPartnerShipments(r.Context(), partnerID, pageRequest)
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrInvalidPartnerID):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.ShipmentListFromEntity(*page))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
