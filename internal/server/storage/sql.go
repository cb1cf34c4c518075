package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

type sqlDialect struct {
	name      string
	selectDoc string
	upsertDoc string
}

var (
	sqliteDialect = sqlDialect{
		name:      "sqlite3",
		selectDoc: `SELECT value FROM documents WHERE key = ?`,
		upsertDoc: `INSERT INTO documents (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	}
	postgresDialect = sqlDialect{
		name:      "pgx",
		selectDoc: `SELECT value FROM documents WHERE key = $1`,
		upsertDoc: `INSERT INTO documents (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	}
)

// SQLBackend stores documents as rows of a single documents table.
type SQLBackend struct {
	db      *sql.DB
	dialect sqlDialect
}

func newSQLBackend(db *sql.DB, dialect sqlDialect) *SQLBackend {
	return &SQLBackend{db: db, dialect: dialect}
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, b.dialect.selectDoc, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return value, nil
}

func (b *SQLBackend) Put(ctx context.Context, key string, value []byte) error {
	if _, err := b.db.ExecContext(ctx, b.dialect.upsertDoc, key, value); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}

// gooseUp is a seam for tests that cannot run real migrations.
var gooseUp = func(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, dir string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, dir)
}
