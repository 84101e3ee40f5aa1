package shipment_tag_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
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

// ServeHTTP отвечает 200 и при повторном добавлении, возвращая уже висящую метку.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var tagDTO dto.TagAdd
	err = json.NewDecoder(r.Body).Decode(&tagDTO)
	if err != nil || tagDTO.Name == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	name, err := tag.ParseTagName(*tagDTO.Name)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	tagEntity, err := h.service.AddTag(r.Context(), id, name)
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

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.TagFromEntity(*tagEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
