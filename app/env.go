package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/srworkflow/workflow/internal/config"
	"github.com/srworkflow/workflow/internal/identity"
	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/store"
	"github.com/srworkflow/workflow/internal/ui"
)

var errNotSignedIn = fmt.Errorf(
	"%w: run 'workflow signup' or 'workflow signin' first",
	session.ErrSignedOut,
)

// env bundles what every command needs: the resolved configuration, an open
// database and the restored identity.
type env struct {
	cfg      *config.Config
	db       store.DB
	logger   *slog.Logger
	identity *identity.Context
	accounts *identity.Service
	logs     io.Closer
}

// setup loads the configuration, opens the log file and the database, and
// restores the signed-in user from the previous run.
func setup(ctx *cli.Context) (*env, error) {
	err := config.InitializePaths()
	if err != nil {
		return nil, err
	}

	logs := logFile(config.LogFilePath())
	logger := newLogger(logs, ctx.Bool("verbose"))

	cfg, err := config.New(
		config.WithPromptConfig(config.ConfigFilePath()),
		config.WithViperConfig(config.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		logs.Close()
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.Open(
		cfg.Storage.Driver,
		config.DBFilePath(cfg.Storage.Driver),
		logger,
	)
	if err != nil {
		logs.Close()
		return nil, err
	}

	current := identity.NewContext()
	current.Subscribe(logIdentity(ctx.Context, logger))

	accounts := identity.NewService(db, current)

	if _, err := accounts.Restore(ctx.Context); err != nil {
		logger.WarnContext(
			ctx.Context,
			"restoring signed-in user failed",
			slog.Any("error", err),
		)
	}

	logger.DebugContext(
		ctx.Context,
		"environment ready",
		slog.String("config", config.ConfigFilePath()),
		slog.String("driver", cfg.Storage.Driver),
	)

	return &env{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		identity: current,
		accounts: accounts,
		logs:     logs,
	}, nil
}

// logIdentity records every sign-in and sign-out.
func logIdentity(ctx context.Context, logger *slog.Logger) func(*identity.User) {
	return func(u *identity.User) {
		if u == nil {
			logger.InfoContext(ctx, "signed out")
			return
		}

		logger.InfoContext(
			ctx,
			"signed in",
			slog.String("user_id", u.ID),
			slog.String("email", u.Email),
		)
	}
}

// ownerID returns the signed-in user's ID.
func (e *env) ownerID() (string, error) {
	id, ok := e.identity.OwnerID()
	if !ok {
		return "", errNotSignedIn
	}

	return id, nil
}

func (e *env) close() error {
	return errors.Join(e.db.Close(), e.logs.Close())
}
