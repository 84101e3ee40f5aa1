package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"tracker/internal/entities"
)

// Store держит всё состояние в памяти процесса. Транзакции сериализуются одним мьютексом,
// изменения внутри Do откатываются журналом отмен при ошибке.
type Store struct {
	mu sync.Mutex

	shipments    map[uuid.UUID]*entities.Shipment
	partners     map[uuid.UUID]*entities.DeliveryPartner
	codes        map[uuid.UUID]*entities.VerificationCode
	reviewTokens map[string]*entities.ReviewToken
	reviews      map[uuid.UUID]entities.Review
}

func NewStore() *Store {
	return &Store{
		shipments:    make(map[uuid.UUID]*entities.Shipment),
		partners:     make(map[uuid.UUID]*entities.DeliveryPartner),
		codes:        make(map[uuid.UUID]*entities.VerificationCode),
		reviewTokens: make(map[string]*entities.ReviewToken),
		reviews:      make(map[uuid.UUID]entities.Review),
	}
}

type txKey struct{}

type journal struct {
	store *Store
	undo  []func()
}

func (j *journal) record(undo func()) {
	if j == nil {
		return
	}
	j.undo = append(j.undo, undo)
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// Do реализует TxManager, вложенный вызов присоединяется к внешней транзакции.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if j, ok := ctx.Value(txKey{}).(*journal); ok && j.store == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journal{store: s}
	err := fn(context.WithValue(ctx, txKey{}, j))
	if err != nil {
		j.rollback()
	}
	return err
}

func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

func (s *Store) Ping(context.Context) error {
	return nil
}

// acquire возвращает журнал текущей транзакции или захватывает мьютекс для одиночной операции.
func (s *Store) acquire(ctx context.Context) (*journal, func()) {
	if j, ok := ctx.Value(txKey{}).(*journal); ok && j.store == s {
		return j, func() {}
	}
	s.mu.Lock()
	return nil, s.mu.Unlock
}
