package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/friendgraph/internal/server/storage/migrations"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a SQLite database at path and
// migrates it. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serializes writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=FULL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := gooseUp(ctx, db, sqliteDialect.name, migrations.SQLite, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return newSQLBackend(db, sqliteDialect), nil
}
