package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"tracker/migrations"
	"tracker/pkg/logger"
)

// Migrate применяет встроенные миграции goose к базе пула.
func Migrate(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, result := range results {
		log.With(
			logger.NewField("version", result.Source.Version),
			logger.NewField("duration", result.Duration.String()),
		).Info("migration applied")
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("migrations version: %w", err)
	}
	log.With(logger.NewField("version", version)).Info("database schema is up to date")
	return nil
}
