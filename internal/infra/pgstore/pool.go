package pgstore

import (
	"context"
	"database/sql"
	"embed"

	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func NewPool(ctx context.Context, cfg config.StoreConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.BuildDSN())
	if err != nil {
		return nil, errs.Wrap(err, "failed to create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errs.Wrap(err, "failed to ping database")
	}
	return pool, nil
}

// Migrator applies the embedded schema migrations through goose. Goose works
// against database/sql, so it borrows a *sql.DB view of the pgx pool.
type Migrator struct {
	db *sql.DB
}

func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, errs.Wrap(err, "failed to set goose dialect")
	}
	goose.SetBaseFS(migrationsFS)
	return &Migrator{db: stdlib.OpenDBFromPool(pool)}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, "migrations"); err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	return nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
