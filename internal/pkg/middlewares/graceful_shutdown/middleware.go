package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

const shuttingDownBody = `{"error":"Service Unavailable","message":"Service is shutting down."}`

// Middleware отдаёт 503, когда остановка начата и ongoingCtx уже отменён.
// До отмены ongoingCtx запросы дообрабатываются, чтобы балансировщик успел снять инстанс.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isShuttingDown.Load() || ongoingCtx.Err() == nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Connection", "close")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(shuttingDownBody))
		})
	}
}
