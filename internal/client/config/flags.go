package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/friendgraph/internal/flagx"
)

// parseFlags populates Config from the flags listed in the package doc.
// Unknown arguments, including -c, are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-r", "-i"})

	fs := flag.NewFlagSet("friendgraph-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "address and port of the server")
	fs.StringVar(&cfg.Secret, "s", cfg.Secret, "shared secret")
	fs.DurationVar(&cfg.DialTimeout, "t", cfg.DialTimeout, "dial timeout")
	fs.DurationVar(&cfg.RequestTimeout, "r", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.CheckInterval, "i", cfg.CheckInterval, "online check interval")

	return fs.Parse(args)
}
