package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/friendgraph/internal/server/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres connects through the pgx stdlib driver and migrates the
// schema.
func OpenPostgres(ctx context.Context, dsn string) (*SQLBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return NewPostgresBackend(ctx, db)
}

// NewPostgresBackend migrates db and wraps it.
func NewPostgresBackend(ctx context.Context, db *sql.DB) (*SQLBackend, error) {
	if err := gooseUp(ctx, db, postgresDialect.name, migrations.Postgres, "postgres"); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return newSQLBackend(db, postgresDialect), nil
}
