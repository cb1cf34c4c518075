package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/friendgraph/internal/flagx"
	"github.com/dmitrijs2005/friendgraph/internal/timex"
)

// JsonConfig is the on-disk form of Config.
type JsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	Secret         string         `json:"secret"`
	DialTimeout    timex.Duration `json:"dial_timeout"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CheckInterval  timex.Duration `json:"online_check_interval"`
}

// parseJSON overlays the file named by -c / -config, if any. Keys absent
// from the file keep their current values.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	jc := JsonConfig{
		ServerAddr:     cfg.ServerAddr,
		Secret:         cfg.Secret,
		DialTimeout:    timex.Duration{Duration: cfg.DialTimeout},
		RequestTimeout: timex.Duration{Duration: cfg.RequestTimeout},
		CheckInterval:  timex.Duration{Duration: cfg.CheckInterval},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ServerAddr = jc.ServerAddr
	cfg.Secret = jc.Secret
	cfg.DialTimeout = jc.DialTimeout.Duration
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.CheckInterval = jc.CheckInterval.Duration
	return nil
}
