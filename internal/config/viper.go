package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/timer"
)

const (
	keyHourlyRate           = "rate.hourly_usd"
	keyConversionRate       = "rate.conversion"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.twenty_four_hour"
	keyNotificationsEnabled = "notifications.enabled"
	keySessionCmd           = "settings.cmd"
	keyTickInterval         = "settings.tick_interval"
	keyStorageDriver        = "storage.driver"
)

const defaultHourlyRate = 5

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does
// not exist yet.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the defaults. Values already gathered by the
// first-run prompt take the place of the built-in defaults.
func setupViper(v *viper.Viper, c *Config) {
	hourly := float64(defaultHourlyRate)
	if c.Rate.HourlyUSD > 0 {
		hourly = c.Rate.HourlyUSD
	}

	v.SetDefault(keyHourlyRate, hourly)
	v.SetDefault(keyConversionRate, earnings.DefaultConversionRate)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, true)
	v.SetDefault(keyNotificationsEnabled, c.Notifications.Enabled)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTickInterval, timer.DefaultTickInterval.String())
	v.SetDefault(keyStorageDriver, "bolt")
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
