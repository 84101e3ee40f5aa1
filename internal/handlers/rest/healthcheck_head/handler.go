package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	isShuttingDown *atomic.Bool
	pingers        []Pinger
}

func New(isShuttingDown *atomic.Bool, pingers ...Pinger) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		pingers:        pingers,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	for _, pinger := range h.pingers {
		if err := pinger.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
