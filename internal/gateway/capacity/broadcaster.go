package capacity

import (
	"context"
	"sync"

	"tracker/internal/entities"
)

// Broadcaster раздаёт события ёмкости всем подписчикам: планировщику процесса и публикатору в Kafka.
// Подписчики добавляются при сборке приложения, после этого список только читается.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers []Notifier
}

func NewBroadcaster(subscribers ...Notifier) *Broadcaster {
	return &Broadcaster{
		subscribers: subscribers,
	}
}

func (b *Broadcaster) Subscribe(n Notifier) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = append(b.subscribers, n)
}

// Notify не должен блокироваться, подписчики обязаны возвращать управление сразу.
func (b *Broadcaster) Notify(ctx context.Context, event entities.CapacityEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, n := range b.subscribers {
		n.Notify(ctx, event)
	}
}
