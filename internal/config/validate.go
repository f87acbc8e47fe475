package config

import (
	"slices"
	"time"
)

var (
	minTickInterval = 10 * time.Millisecond
	maxTickInterval = 5 * time.Second

	drivers = []string{"bolt", "sqlite"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Rate.HourlyUSD < 0 {
		return errNegativeRate.Fmt(c.Rate.HourlyUSD)
	}

	if c.Rate.Conversion <= 0 {
		return errInvalidConversion.Fmt(c.Rate.Conversion)
	}

	if c.Settings.TickInterval < minTickInterval ||
		c.Settings.TickInterval > maxTickInterval {
		return errInvalidTick.Fmt(
			minTickInterval,
			maxTickInterval,
			c.Settings.TickInterval,
		)
	}

	if !slices.Contains(drivers, c.Storage.Driver) {
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	return nil
}
