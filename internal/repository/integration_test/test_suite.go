//go:build integration

package integration_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"tracker/internal/pkg/postgres"
	"tracker/pkg/logger"
	"tracker/pkg/querier"
)

var querierInstance *querier.Querier

// Main поднимает Postgres в контейнере, применяет миграции и запускает тесты пакета.
// Вызывается из TestMain каждого пакета с интеграционными тестами.
func Main(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tracker_test"),
		tcpostgres.WithUsername("tracker"),
		tcpostgres.WithPassword("tracker"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Printf("failed to start postgres testcontainer: %v", err)
		return 1
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	}()

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Printf("failed to get connection string from container: %v", err)
		return 1
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Printf("failed to create pgx pool: %v", err)
		return 1
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, logger.Nop{}, pool); err != nil {
		log.Printf("failed to apply migrations: %v", err)
		return 1
	}

	querierInstance = querier.New(pool, pgxv5.DefaultCtxGetter)

	return m.Run()
}

func GetQuerier() *querier.Querier {
	return querierInstance
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE reviews, review_tokens, verification_codes,
			shipment_tags, shipment_events, shipments, partners CASCADE;
	`)
	require.NoError(t, err)
}
