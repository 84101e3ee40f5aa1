package shipment_tag_delete

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"tracker/internal/handlers/rest/httperr"
	"tracker/internal/service/tag"
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
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	name, err := tag.ParseTagName(vars["tag"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.RemoveTag(r.Context(), id, name)
	if err != nil {
		switch {
		case errors.Is(err, tag.ErrInvalidShipmentID),
			errors.Is(err, tag.ErrUnknownTag):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
