package querier

import (
	"context"
	"strings"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"tracker/pkg/logger"
)

type slowLogger interface {
	Warn(msg string, fields ...logger.Field)
}

type Option func(*Querier)

// WithSlowQueryLog пишет в log запросы, выполнявшиеся дольше threshold.
// Для Query учитывается время до первой строки, а не чтение всего результата.
func WithSlowQueryLog(log slowLogger, threshold time.Duration) Option {
	return func(q *Querier) {
		q.slowLog = log
		q.slowThreshold = threshold
	}
}

// Querier выполняет запросы в транзакции из ctx, если она есть, иначе на пуле.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter

	slowLog       slowLogger
	slowThreshold time.Duration
	now           func() time.Time
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter, opts ...Option) *Querier {
	q := &Querier{
		pool:   pool,
		getter: getter,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	defer q.observe(ctx, sql, q.now())
	return q.get(ctx).Exec(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	defer q.observe(ctx, sql, q.now())
	return q.get(ctx).Query(ctx, sql, args...)
}

// QueryRow откладывает выполнение до Scan, поэтому медленные QueryRow здесь не видны.
func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.get(ctx).QueryRow(ctx, sql, args...)
}

func (q *Querier) Ping(ctx context.Context) error {
	return q.pool.Ping(ctx)
}

func (q *Querier) get(ctx context.Context) pgxv5.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.pool)
}

func (q *Querier) observe(ctx context.Context, sql string, started time.Time) {
	if q.slowLog == nil || q.slowThreshold <= 0 {
		return
	}

	elapsed := q.now().Sub(started)
	if elapsed < q.slowThreshold {
		return
	}

	q.slowLog.Warn("slow query",
		logger.NewField("sql", compactSQL(sql)),
		logger.NewField("duration", elapsed.String()),
		logger.NewField("in_tx", q.getter.DefaultTrOrDB(ctx, nil) != nil),
	)
}

// compactSQL схлопывает переводы строк и отступы многострочных запросов.
func compactSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
