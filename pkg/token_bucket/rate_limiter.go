package token_bucket

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow() bool
}

type Clock func() time.Time

type Option func(*TokenBucket)

// WithClock подменяет источник времени, нужен для детерминированных тестов.
func WithClock(clock Clock) Option {
	return func(t *TokenBucket) {
		t.now = clock
	}
}

// TokenBucket хранит дробное число токенов, поэтому медленный refill не теряется
// при частых вызовах Allow.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        Clock
	mu         sync.Mutex
}

// NewTokenBucket создаёт ведро на burst токенов, пополняемое со скоростью ratePerSecond.
func NewTokenBucket(burst int, ratePerSecond float64, opts ...Option) *TokenBucket {
	t := &TokenBucket{
		capacity:   float64(burst),
		tokens:     float64(burst),
		refillRate: ratePerSecond,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.lastRefill = t.now()
	return t
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

// Tokens возвращает текущее число целых токенов.
func (t *TokenBucket) Tokens() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return int(t.tokens)
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}
