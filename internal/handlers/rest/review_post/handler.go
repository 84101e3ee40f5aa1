package review_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlekSi/pointer"
	"tracker/internal/entities"
	"tracker/internal/handlers/rest/dto"
	"tracker/internal/handlers/rest/httperr"
	"tracker/internal/service/shipment"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var submitDTO dto.ReviewSubmit
	err := json.NewDecoder(r.Body).Decode(&submitDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	submit := entities.ReviewSubmit{
		Token:   pointer.GetString(submitDTO.Token),
		Rating:  pointer.GetInt(submitDTO.Rating),
		Comment: submitDTO.Comment,
	}

	review, err := h.service.SubmitReview(r.Context(), submit)
	if err != nil {
		switch {
		case errors.Is(err, shipment.ErrMissingRequiredFields),
			errors.Is(err, shipment.ErrInvalidRating),
			errors.Is(err, shipment.ErrInvalidComment),
			errors.Is(err, token.ErrEmptyToken):
			w.WriteHeader(http.StatusBadRequest)
		default:
			httperr.Write(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.ReviewFromEntity(*review))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
