// Package config loads runtime configuration for the friendgraph CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string     address:port of the friendgraph server
//	-s string     shared secret used to seal credentials
//	-t duration   dial timeout (e.g. "5s")
//	-r duration   per-request timeout (e.g. "10s")
//	-i duration   how often the CLI probes the server (e.g. "3s")
//
// # JSON schema
//
// Durations go through timex.Duration, so "5s" and integer nanoseconds both
// work:
//
//	{
//	  "server_addr": "127.0.0.1:5050",
//	  "secret": "friendgraph-dev-secret",
//	  "dial_timeout": "5s",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
