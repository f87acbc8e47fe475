package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/srworkflow/workflow/internal/session"
)

// runSessionCmd executes the specified command.
func runSessionCmd(ctx context.Context, sessionCmd string) error {
	if strings.TrimSpace(sessionCmd) == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)

	return cmd.Run()
}

// sessionHook returns a finalize hook that runs sessionCmd, or nil when no
// command is configured.
func sessionHook(
	sessionCmd string,
	logger *slog.Logger,
) func(context.Context, session.Session) {
	if strings.TrimSpace(sessionCmd) == "" {
		return nil
	}

	return func(ctx context.Context, sess session.Session) {
		err := runSessionCmd(ctx, sessionCmd)
		if err != nil {
			logger.ErrorContext(
				ctx,
				"session command failed",
				slog.String("cmd", sessionCmd),
				slog.String("session_id", sess.ID),
				slog.Any("error", err),
			)

			return
		}

		logger.DebugContext(
			ctx,
			"session command completed",
			slog.String("cmd", sessionCmd),
			slog.String("session_id", sess.ID),
		)
	}
}
