package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/server/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":5050", c.ListenAddr)
	assert.Equal(t, 16<<20, c.MaxFrameSize)
	assert.Equal(t, storage.DriverFile, c.StorageDriver)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	c, err := Load([]string{}, map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"listen_addr":      "json:1",
		"secret":           "json-secret",
		"storage_driver":   "sqlite",
		"sqlite_path":      "/var/lib/fg.db",
		"shutdown_timeout": "3s",
		"log_level":        "debug",
	})

	environ := map[string]string{
		"FRIENDGRAPH_LISTEN_ADDR":    "env:2",
		"FRIENDGRAPH_MAX_FRAME_SIZE": "4096",
		"FRIENDGRAPH_HEALTH_ADDR":    ":7000",
	}

	c, err := Load([]string{"-c", path, "-a", "flag:3", "-t", "7s"}, environ)
	require.NoError(t, err)

	want := defaults()
	want.ListenAddr = "flag:3"
	want.Secret = "json-secret"
	want.StorageDriver = storage.DriverSQLite
	want.SQLitePath = "/var/lib/fg.db"
	want.LogLevel = "debug"
	want.MaxFrameSize = 4096
	want.HealthAddr = ":7000"
	want.ShutdownTimeout = 7 * time.Second

	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseJSON_PartialFileKeepsOtherFields(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"bcrypt_cost": 12, "shutdown_timeout": 2000000000})

	c := defaults()
	require.NoError(t, parseJSON(c, []string{"-config", path}))

	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, 2*time.Second, c.ShutdownTimeout)
	assert.Equal(t, ":5050", c.ListenAddr)
}

func TestParseJSON_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	assert.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	assert.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "missing.json")}))
}

func TestParseEnv_BadValue(t *testing.T) {
	err := parseEnv(defaults(), map[string]string{"FRIENDGRAPH_BCRYPT_COST": "lots"})
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	c := defaults()
	err := parseFlags(c, []string{
		"-a", "127.0.0.1:6000", "-m", "1024", "-s", "secret", "-b", "4",
		"-d", "s3", "-s3-bucket", "bucket", "-s3-region", "eu-west-1",
		"-s3-endpoint", "http://minio:9000", "-s3-access-key", "ak", "-s3-secret-key", "sk",
		"-health=", "-metrics", ":9999", "-l", "warn", "-unknown", "x",
	})
	require.NoError(t, err)

	want := defaults()
	want.ListenAddr = "127.0.0.1:6000"
	want.MaxFrameSize = 1024
	want.Secret = "secret"
	want.BcryptCost = 4
	want.StorageDriver = storage.DriverS3
	want.S3Bucket = "bucket"
	want.S3Region = "eu-west-1"
	want.S3BaseEndpoint = "http://minio:9000"
	want.S3AccessKey = "ak"
	want.S3SecretKey = "sk"
	want.HealthAddr = ""
	want.MetricsAddr = ":9999"
	want.LogLevel = "warn"

	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_BadValue(t *testing.T) {
	assert.Error(t, parseFlags(defaults(), []string{"-m", "big"}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty listen", func(c *Config) { c.ListenAddr = "" }},
		{"zero frame", func(c *Config) { c.MaxFrameSize = 0 }},
		{"empty secret", func(c *Config) { c.Secret = "" }},
		{"bad driver", func(c *Config) { c.StorageDriver = "mongo" }},
		{"no timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestStorageOptions(t *testing.T) {
	c := defaults()
	c.StorageDriver = storage.DriverBadger
	c.BadgerDir = "/tmp/b"
	c.S3AccessKey = "ak"

	opts := c.StorageOptions()
	assert.Equal(t, storage.DriverBadger, opts.Driver)
	assert.Equal(t, "/tmp/b", opts.BadgerDir)
	assert.Equal(t, "ak", opts.S3.AccessKey)
	assert.Equal(t, c.S3Prefix, opts.S3.Prefix)
}
