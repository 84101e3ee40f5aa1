package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// Manager инкапсулирует логику управления транзакциями.
// Вложенные вызовы присоединяются к уже открытой транзакции из ctx.
type Manager struct {
	internal  *manager.Manager
	translate func(error) error
}

type Option func(*Manager)

// WithErrorTranslator задаёт преобразование ошибок, возвращаемых из Do, в том числе ошибок коммита.
func WithErrorTranslator(translate func(error) error) Option {
	return func(m *Manager) {
		m.translate = translate
	}
}

func New(db pgxv5.Transactional, opts ...Option) *Manager {
	m := &Manager{
		internal:  manager.Must(pgxv5.NewDefaultFactory(db)),
		translate: func(err error) error { return err },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) exec(
	ctx context.Context,
	opts pgx.TxOptions,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(opts),
	)
	return m.translate(m.internal.DoWithSettings(ctx, txSettings, fn))
}

// Do открывает serializable транзакцию.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.exec(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

// DoReadOnly даёт согласованный снимок для нескольких чтений (count + page).
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.exec(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, fn)
}
