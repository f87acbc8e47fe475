// Package store persists time entries and accounts in a local database
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/srworkflow/workflow/internal/identity"
	"github.com/srworkflow/workflow/internal/session"
)

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

var (
	errWorkflowRunning = errors.New(
		"is workflow already running? Only one instance can be active at a time",
	)
	errUnknownDriver = errors.New("unknown storage driver")
)

// DB is the database storage interface shared by every backend.
type DB interface {
	session.Store
	identity.AccountStore
	io.Closer
}

// Open connects to the database at path using the named driver.
func Open(driver, path string, logger *slog.Logger) (DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch driver {
	case DriverBolt, "":
		return NewClient(path, logger)
	case DriverSQLite:
		return NewSQLClient(path, logger)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDriver, driver)
	}
}
