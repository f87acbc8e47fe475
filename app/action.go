package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/srworkflow/workflow/internal/config"
	"github.com/srworkflow/workflow/internal/export"
	"github.com/srworkflow/workflow/internal/history"
	"github.com/srworkflow/workflow/internal/osutil"
	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/static"
	"github.com/srworkflow/workflow/internal/timer"
	"github.com/srworkflow/workflow/internal/timeutil"
	"github.com/srworkflow/workflow/internal/tracker"
	"github.com/srworkflow/workflow/internal/ui"
)

const (
	envNoColor         = "NO_COLOR"
	envWorkflowNoColor = "WORKFLOW_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// listSessions fetches the signed-in user's sessions.
func (e *env) listSessions(ctx *cli.Context) ([]session.Session, error) {
	ownerID, err := e.ownerID()
	if err != nil {
		return nil, err
	}

	return e.db.ListSessions(ctx.Context, ownerID)
}

// notifier returns the desktop notifier used alongside the tracker screen.
// Terminal output is discarded while the screen is up.
func (e *env) notifier(ctx *cli.Context) *ui.Notifier {
	n := ui.NewNotifier(e.cfg.Notifications.Enabled, "")
	n.Out = io.Discard

	if !n.Desktop {
		return n
	}

	icon, err := static.Install(config.DataDir())
	if err != nil {
		e.logger.WarnContext(
			ctx.Context,
			"installing notification icon failed",
			slog.Any("error", err),
		)

		return n
	}

	n.IconPath = icon

	return n
}

// defaultAction opens the tracker screen.
func defaultAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	if _, err = e.ownerID(); err != nil {
		return err
	}

	feed := &tracker.Feed{Next: e.notifier(ctx)}

	ctrl := session.NewController(
		e.db,
		timer.New(),
		e.identity,
		session.WithNotifier(feed),
		session.WithLogger(e.logger),
		session.WithConversionRate(e.cfg.Rate.Conversion),
		session.WithFinalizeHook(sessionHook(e.cfg.Settings.Cmd, e.logger)),
	)

	if err = ctrl.Refresh(ctx.Context); err != nil {
		e.logger.WarnContext(
			ctx.Context,
			"loading time entries failed",
			slog.Any("error", err),
		)
	}

	model := tracker.New(ctx.Context, ctrl, tracker.Options{
		Logger:         e.logger,
		Feed:           feed,
		Style:          tracker.NewStyle(e.cfg.Display.DarkTheme),
		HourlyRate:     e.cfg.Rate.HourlyUSD,
		TickInterval:   e.cfg.Settings.TickInterval,
		TwentyFourHour: e.cfg.Display.TwentyFourHour,
	})

	if _, err = tea.NewProgram(model).Run(); err != nil {
		return err
	}

	if id, ok := ctrl.Active(); ok {
		pterm.Info.Printfln(
			"Session %s was left in progress. It has no end time and earns nothing until it is stopped.",
			id,
		)
	}

	return nil
}

// historyAction prints the signed-in user's sessions grouped by day.
func historyAction(ctx *cli.Context) error {
	filter, err := config.Filter(ctx, time.Now())
	if err != nil {
		return err
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	sessions, err := e.listSessions(ctx)
	if err != nil {
		return err
	}

	groups, invalid := history.Aggregate(
		sessions,
		filter.Criteria,
		filter.Order,
		time.Local,
	)

	reportInvalid(ctx.Context, config.Stdout, e.logger, invalid)

	if filter.JSON {
		return printJSON(config.Stdout, groups)
	}

	return printHistory(config.Stdout, groups, time.Local)
}

// analyticsRange returns the charted period. It defaults to the current
// month.
func analyticsRange(criteria history.Criteria, now time.Time) (from, to time.Time) {
	from = timeutil.StartOfMonth(now)
	to = timeutil.EndOfMonth(now)

	if criteria.DateFrom != nil {
		from = timeutil.RoundToStart(*criteria.DateFrom)
	}

	if criteria.DateTo != nil {
		to = timeutil.RoundToEnd(*criteria.DateTo)
	}

	return from, to
}

// analyticsAction charts tracked time and earnings over a period.
func analyticsAction(ctx *cli.Context) error {
	now := time.Now()

	filter, err := config.Filter(ctx, now)
	if err != nil {
		return err
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	sessions, err := e.listSessions(ctx)
	if err != nil {
		return err
	}

	sessions, invalid := history.Valid(sessions)
	reportInvalid(ctx.Context, config.Stdout, e.logger, invalid)

	from, to := analyticsRange(filter.Criteria, now)
	buckets := history.Chart(sessions, from, to, filter.View, time.Local)

	if filter.JSON {
		return printJSON(config.Stdout, buckets)
	}

	minutes, rupees := chartBars(buckets)

	err = ui.PrintBarChart(config.Stdout, "Minutes tracked", minutes)
	if err != nil {
		return err
	}

	err = ui.PrintBarChart(config.Stdout, "Earnings (INR)", rupees)
	if err != nil {
		return err
	}

	period := filter.Criteria
	period.Clear()
	period.DateFrom, period.DateTo = &from, &to

	if len(history.Filter(sessions, period, time.Local)) == 0 {
		pterm.Info.WithWriter(config.Stdout).Println(noSessionsMsg)
	}

	return nil
}

// exportAction writes the filtered sessions to a CSV or PDF report.
func exportAction(ctx *cli.Context) error {
	now := time.Now()

	filter, err := config.Filter(ctx, now)
	if err != nil {
		return err
	}

	format := firstNonEmptyString(filter.Format, export.FormatCSV)
	if format != export.FormatCSV && format != export.FormatPDF {
		return errUnknownFormat.Fmt(format)
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	sessions, err := e.listSessions(ctx)
	if err != nil {
		return err
	}

	sessions, invalid := exportable(
		sessions,
		filter.Criteria,
		filter.Order,
		time.Local,
	)
	reportInvalid(ctx.Context, config.Stdout, e.logger, invalid)

	if len(sessions) == 0 {
		pterm.Info.WithWriter(config.Stdout).Println(noSessionsMsg)
		return nil
	}

	out := firstNonEmptyString(filter.Output, export.FileName(format, now))

	err = writeReport(out, format, export.Rows(sessions, time.Local), now)
	if err != nil {
		return errExportFailed.Wrap(err)
	}

	e.logger.InfoContext(
		ctx.Context,
		"time entries exported",
		slog.String("path", out),
		slog.String("format", format),
		slog.Int("count", len(sessions)),
	)

	pterm.Success.WithWriter(config.Stdout).Printfln(
		"Exported %d time entries to %s",
		len(sessions),
		out,
	)

	return nil
}

func writeReport(path, format string, rows []export.Row, now time.Time) error {
	f, err := os.OpenFile(
		path,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		osutil.FilePermission,
	)
	if err != nil {
		return err
	}

	if format == export.FormatPDF {
		err = export.WritePDF(f, rows, now)
	} else {
		err = export.WriteCSV(f, rows)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}

// editConfigAction handles the edit-config command which opens the workflow
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	if err := config.InitializePaths(); err != nil {
		return err
	}

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if WORKFLOW_NO_COLOR is set
	if _, exists := os.LookupEnv(envWorkflowNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
