package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/friendgraph/internal/logging"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
	DriverS3       = "s3"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string
	DataDir     string
	SQLitePath  string
	PostgresDSN string
	BadgerDir   string
	S3          S3Options
}

// Open builds the backend named by opts.Driver. An empty driver means file.
func Open(ctx context.Context, opts Options, log logging.Logger) (Backend, error) {
	switch opts.Driver {
	case "", DriverFile:
		return NewFileBackend(opts.DataDir)
	case DriverSQLite:
		return OpenSQLite(ctx, opts.SQLitePath)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN)
	case DriverBadger:
		return OpenBadger(BadgerOptions{Dir: opts.BadgerDir}, log)
	case DriverS3:
		return OpenS3(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
