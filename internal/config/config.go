// Package config loads workflow settings from the config file, the first-run
// prompt and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/srworkflow/workflow/internal/osutil"
)

type (
	// Config holds all configuration settings
	Config struct {
		Storage       StorageConfig      `mapstructure:"storage"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Rate          RateConfig         `mapstructure:"rate"`
		Display       DisplayConfig      `mapstructure:"display"`
		Notifications NotificationConfig `mapstructure:"notifications"`
	}

	// RateConfig holds the billing rate settings
	RateConfig struct {
		HourlyUSD  float64 `mapstructure:"hourly_usd"`
		Conversion float64 `mapstructure:"conversion"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"twenty_four_hour"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// SettingsConfig holds general tracker settings
	SettingsConfig struct {
		Cmd          string        `mapstructure:"cmd"`
		TickInterval time.Duration `mapstructure:"tick_interval"`
	}

	// StorageConfig selects the database backend
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	configDir      = "workflow"
	configFileName = "config.yml"
	dbFileName     = "workflow"
	logFileName    = "workflow.log"
	dataDir        string
	configFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DataDir() string {
	return dataDir
}

// DBFilePath returns the database file used by the given storage driver.
func DBFilePath(driver string) string {
	ext := ".db"
	if driver == "sqlite" {
		ext = ".sqlite"
	}

	return filepath.Join(dataDir, dbFileName+ext)
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the config, data and log file locations. Setting
// WORKFLOW_ENV keeps a separate set of files per environment.
func InitializePaths() error {
	if env := strings.TrimSpace(os.Getenv("WORKFLOW_ENV")); env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("workflow_%s", env)
		logFileName = fmt.Sprintf("workflow_%s.log", env)
	}

	var err error

	configFilePath, err = xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	dataDir, err = xdg.DataFile(configDir)
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	err = os.MkdirAll(dataDir, osutil.DirPermission)
	if err != nil {
		return errInitPaths.Wrap(err)
	}

	logFilePath = filepath.Join(dataDir, "log", logFileName)

	return nil
}

// New creates a new Config, applies options in order and validates the
// result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
