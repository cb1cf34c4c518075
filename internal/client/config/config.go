package config

import (
	"errors"
	"os"
	"time"
)

// Config holds runtime settings for the friendgraph CLI.
type Config struct {
	ServerAddr     string
	Secret         string
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	CheckInterval  time.Duration
}

// LoadDefaults populates c with values matching a local development server.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "127.0.0.1:5050"
	c.Secret = "friendgraph-dev-secret"
	c.DialTimeout = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.CheckInterval = 3 * time.Second
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file, then flags found in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerAddr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.Secret == "" {
		errs = append(errs, errors.New("secret is required"))
	}
	if c.DialTimeout <= 0 {
		errs = append(errs, errors.New("dial timeout must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.CheckInterval <= 0 {
		errs = append(errs, errors.New("check interval must be positive"))
	}
	return errors.Join(errs...)
}
