package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/pterm/pterm"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/export"
	"github.com/srworkflow/workflow/internal/history"
	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timeutil"
	"github.com/srworkflow/workflow/internal/ui"
)

const (
	noSessionsMsg = "No time entries found for the specified filters"
	dayLayout     = "Monday, Jan 2, 2006"
)

// reportInvalid warns about malformed entries that were left out and logs
// them.
func reportInvalid(
	ctx context.Context,
	w io.Writer,
	logger *slog.Logger,
	invalid []history.InvalidEntry,
) {
	for _, entry := range invalid {
		logger.WarnContext(
			ctx,
			"skipping malformed time entry",
			slog.String("id", entry.Session.ID),
			slog.Any("error", entry.Err),
		)

		pterm.Warning.WithWriter(w).Printfln(
			"Skipping time entry %s: %v",
			entry.Session.ID,
			entry.Err,
		)
	}
}

// exportable returns the well-formed sessions that match criteria in the
// requested order, along with the malformed ones.
func exportable(
	sessions []session.Session,
	criteria history.Criteria,
	order history.Order,
	loc *time.Location,
) ([]session.Session, []history.InvalidEntry) {
	valid, invalid := history.Valid(sessions)
	valid = history.Filter(valid, criteria, loc)

	if order == history.Ascending {
		slices.Reverse(valid)
	}

	return valid, invalid
}

// dayHeading summarises one day of history.
func dayHeading(g *history.DayGroup) string {
	return fmt.Sprintf(
		"%s  %s  %s",
		ui.Highlight(g.Date.Format(dayLayout)),
		ui.Blue(timeutil.FormatDuration(g.TotalDuration)),
		ui.Green(earnings.FormatINR(g.TotalEarningsINR)),
	)
}

// printDayTable prints the sessions of one day as a table.
func printDayTable(w io.Writer, g *history.DayGroup, loc *time.Location) error {
	rows := export.Rows(g.Sessions, loc)

	tableBody := make([][]string, 0, len(rows)+1)
	tableBody = append(tableBody, []string{
		"#", "START", "END", "DURATION", "RATE", "EARNINGS",
	})

	for i, r := range rows {
		end := r.EndTime
		if g.Sessions[i].InProgress() {
			end = ui.Yellow(end)
		}

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			r.StartTime,
			end,
			r.Duration,
			r.HourlyRate,
			r.Earnings,
		})
	}

	return ui.PrintTable(tableBody, w)
}

// printHistory prints a heading and a session table for every day.
func printHistory(
	w io.Writer,
	groups []history.DayGroup,
	loc *time.Location,
) error {
	if len(groups) == 0 {
		pterm.Info.WithWriter(w).Println(noSessionsMsg)
		return nil
	}

	var (
		total  time.Duration
		earned float64
	)

	for i := range groups {
		g := &groups[i]

		total += g.TotalDuration
		earned += g.TotalEarningsINR

		if _, err := fmt.Fprintln(w, dayHeading(g)); err != nil {
			return err
		}

		if err := printDayTable(w, g, loc); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(
		w,
		"%s %s across %d day(s), %s earned\n",
		ui.Yellow("Total:"),
		timeutil.FormatDuration(total),
		len(groups),
		earnings.FormatINR(earned),
	)

	return err
}

// chartBars converts chart buckets into minute and rupee bars.
func chartBars(buckets []history.Bucket) (minutes, rupees []ui.Bar) {
	minutes = make([]ui.Bar, len(buckets))
	rupees = make([]ui.Bar, len(buckets))

	for i, b := range buckets {
		minutes[i] = ui.Bar{
			Label: b.Label,
			Value: timeutil.Round(b.Hours * 60),
		}

		rupees[i] = ui.Bar{
			Label: b.Label,
			Value: timeutil.Round(b.Earnings),
		}
	}

	return minutes, rupees
}
