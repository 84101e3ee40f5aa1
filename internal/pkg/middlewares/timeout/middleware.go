package timeout

import (
	"net/http"
	"time"
)

const timeoutBody = `{"error":"Service Unavailable","message":"Request timed out."}`

// Middleware ограничивает время обработки запроса. Контекст запроса получает
// дедлайн, а если обработчик не успел ответить, клиент получает 503.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
