package keymutex

import "sync"

// KeyMutex сериализует работу по одному ключу, разные ключи не блокируют друг друга.
// Записи удаляются, когда ключ больше никем не удерживается.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*entry),
	}
}

// Lock захватывает ключ и возвращает функцию освобождения.
func (k *KeyMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len возвращает число ключей, которые сейчас удерживаются или ожидаются.
func (k *KeyMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
