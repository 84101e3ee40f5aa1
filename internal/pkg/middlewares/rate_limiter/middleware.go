package rate_limiter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"tracker/pkg/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Middleware отклоняет запрос с 429, если в limiter не осталось токенов.
// Служебные маршруты (healthcheck, metrics) регистрируются до него и не лимитируются.
func Middleware(log handlerLogger, rateLimiterQPS int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed := limiter.Allow()
			RateLimitTokensAvailable.Set(float64(limiter.Tokens()))

			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			RateLimitRejectedTotal.WithLabelValues(r.Method, handlerPath).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			err := json.NewEncoder(w).Encode(errorResponse{
				Error:   "Too Many Requests",
				Message: "Rate limit exceeded. Try again later.",
			})
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}
