package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/friendgraph/internal/flagx"
)

var serverFlags = []string{
	"-a", "-m", "-s", "-b", "-d", "-data", "-sqlite", "-pg", "-badger",
	"-s3-bucket", "-s3-prefix", "-s3-region", "-s3-endpoint", "-s3-access-key", "-s3-secret-key",
	"-health", "-metrics", "-l", "-t",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        listen address (e.g. ":5050")
//	-m int           max frame size in bytes
//	-s string        shared secret
//	-b int           bcrypt cost
//	-d string        storage driver: file, sqlite, postgres, badger, s3
//	-data string     data directory for the file driver
//	-sqlite string   SQLite database path
//	-pg string       PostgreSQL DSN
//	-badger string   badger directory
//	-s3-*            S3 bucket, prefix, region, endpoint, access and secret keys
//	-health string   gRPC health address, empty disables
//	-metrics string  Prometheus address, empty disables
//	-l string        log level
//	-t duration      shutdown timeout (e.g. "10s")
//
// Arguments are first narrowed with flagx.FilterArgs so the -c flag handled
// by the JSON layer does not trip the parser.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("friendgraph-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to listen on")
	fs.IntVar(&config.MaxFrameSize, "m", config.MaxFrameSize, "max frame size in bytes")
	fs.StringVar(&config.Secret, "s", config.Secret, "shared secret")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.StorageDriver, "d", config.StorageDriver, "storage driver")
	fs.StringVar(&config.DataDir, "data", config.DataDir, "data directory")
	fs.StringVar(&config.SQLitePath, "sqlite", config.SQLitePath, "sqlite database path")
	fs.StringVar(&config.PostgresDSN, "pg", config.PostgresDSN, "postgres DSN")
	fs.StringVar(&config.BadgerDir, "badger", config.BadgerDir, "badger directory")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Prefix, "s3-prefix", config.S3Prefix, "S3 key prefix")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "s3-access-key", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "s3-secret-key", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.HealthAddr, "health", config.HealthAddr, "gRPC health address")
	fs.StringVar(&config.MetricsAddr, "metrics", config.MetricsAddr, "metrics address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "shutdown timeout")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
