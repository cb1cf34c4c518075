package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/friendgraph/internal/flagx"
	"github.com/dmitrijs2005/friendgraph/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept "10s" style
// strings or integer nanoseconds via timex.Duration.
type JsonConfig struct {
	ListenAddr      string         `json:"listen_addr"`
	MaxFrameSize    int            `json:"max_frame_size"`
	Secret          string         `json:"secret"`
	BcryptCost      int            `json:"bcrypt_cost"`
	StorageDriver   string         `json:"storage_driver"`
	DataDir         string         `json:"data_dir"`
	SQLitePath      string         `json:"sqlite_path"`
	PostgresDSN     string         `json:"postgres_dsn"`
	BadgerDir       string         `json:"badger_dir"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Prefix        string         `json:"s3_prefix"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	HealthAddr      string         `json:"health_addr"`
	MetricsAddr     string         `json:"metrics_addr"`
	LogLevel        string         `json:"log_level"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJSON overlays the file named by -c / -config, if any. Keys absent
// from the file keep their current values.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := fromConfig(config)
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.apply(config)
	return nil
}

func fromConfig(c *Config) *JsonConfig {
	return &JsonConfig{
		ListenAddr:      c.ListenAddr,
		MaxFrameSize:    c.MaxFrameSize,
		Secret:          c.Secret,
		BcryptCost:      c.BcryptCost,
		StorageDriver:   c.StorageDriver,
		DataDir:         c.DataDir,
		SQLitePath:      c.SQLitePath,
		PostgresDSN:     c.PostgresDSN,
		BadgerDir:       c.BadgerDir,
		S3Bucket:        c.S3Bucket,
		S3Prefix:        c.S3Prefix,
		S3Region:        c.S3Region,
		S3BaseEndpoint:  c.S3BaseEndpoint,
		S3AccessKey:     c.S3AccessKey,
		S3SecretKey:     c.S3SecretKey,
		HealthAddr:      c.HealthAddr,
		MetricsAddr:     c.MetricsAddr,
		LogLevel:        c.LogLevel,
		ShutdownTimeout: timex.Duration{Duration: c.ShutdownTimeout},
	}
}

func (j *JsonConfig) apply(c *Config) {
	c.ListenAddr = j.ListenAddr
	c.MaxFrameSize = j.MaxFrameSize
	c.Secret = j.Secret
	c.BcryptCost = j.BcryptCost
	c.StorageDriver = j.StorageDriver
	c.DataDir = j.DataDir
	c.SQLitePath = j.SQLitePath
	c.PostgresDSN = j.PostgresDSN
	c.BadgerDir = j.BadgerDir
	c.S3Bucket = j.S3Bucket
	c.S3Prefix = j.S3Prefix
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.S3AccessKey = j.S3AccessKey
	c.S3SecretKey = j.S3SecretKey
	c.HealthAddr = j.HealthAddr
	c.MetricsAddr = j.MetricsAddr
	c.LogLevel = j.LogLevel
	c.ShutdownTimeout = j.ShutdownTimeout.Duration
}
