package ping_get

import (
	"encoding/json"
	"net/http"
	"time"

	"tracker/internal/handlers/rest/dto"
	"tracker/pkg/logger"
)

const pongMessage = "pong"

type Handler struct {
	log     handlerLogger
	now     func() time.Time
	service string
}

// New отвечает на /ping именем сервиса и серверным временем, по нему клиенты сверяют часы.
func New(log handlerLogger, service string, now func() time.Time) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "ping_get")),
		now:     now,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	res := dto.PingResponse{
		Message:    pongMessage,
		Service:    h.service,
		ServerTime: h.now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.Error("encode ping response", logger.NewField("error", err))
	}
}
