package config

import (
	"github.com/urfave/cli/v2"

	"github.com/srworkflow/workflow/internal/earnings"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Rate       string
	SessionCmd string
	Driver     string
	RateSet    bool
	Notify     bool
	NotifySet  bool
}

// WithCLIConfig returns an Option that overrides file values with the flags
// set on the command line.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Rate:       ctx.String("rate"),
			RateSet:    ctx.IsSet("rate"),
			SessionCmd: ctx.String("session-cmd"),
			Driver:     ctx.String("storage"),
			Notify:     ctx.Bool("notify"),
			NotifySet:  ctx.IsSet("notify"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.RateSet {
		c.Rate.HourlyUSD = earnings.ParseRate(opts.Rate)
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.Driver != "" {
		c.Storage.Driver = opts.Driver
	}

	if opts.NotifySet {
		c.Notifications.Enabled = opts.Notify
	}
}
