package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// registerPoolMetrics публикует статистику пула, значения читаются при каждом scrape.
// В процессе один пул, повторная регистрация игнорируется.
func registerPoolMetrics(pool *pgxpool.Pool) {
	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_acquired_connections",
			Help: "Connections currently in use",
		}, func() float64 { return float64(pool.Stat().AcquiredConns()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Idle connections in the pool",
		}, func() float64 { return float64(pool.Stat().IdleConns()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_max_connections",
			Help: "Maximum size of the pool",
		}, func() float64 { return float64(pool.Stat().MaxConns()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "db_pool_empty_acquire_total",
			Help: "Acquires that had to wait for a free connection",
		}, func() float64 { return float64(pool.Stat().EmptyAcquireCount()) }),
	}

	for _, c := range collectors {
		_ = prometheus.Register(c)
	}
}
