package healthcheck_head

import "context"

// Pinger проверяет внешнюю зависимость, например пул соединений с базой.
type Pinger interface {
	Ping(ctx context.Context) error
}
