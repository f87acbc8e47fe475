// Package export renders tracked sessions as CSV or PDF reports
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timeutil"
)

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

const (
	dateLayout  = "Jan 2, 2006"
	clockLayout = "15:04:05"
	inProgress  = "In Progress"
	noEarnings  = "-"
)

// Header lists the report columns.
var Header = []string{
	"Date",
	"Start Time",
	"End Time",
	"Duration",
	"Hourly Rate (USD)",
	"Earnings (INR)",
}

// Row is one session formatted for a report.
type Row struct {
	Date       string
	StartTime  string
	EndTime    string
	Duration   string
	HourlyRate string
	Earnings   string
}

// Fields returns the cells of r in Header order.
func (r Row) Fields() []string {
	return []string{
		r.Date,
		r.StartTime,
		r.EndTime,
		r.Duration,
		r.HourlyRate,
		r.Earnings,
	}
}

// Rows formats sessions in loc, keeping their order.
func Rows(sessions []session.Session, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}

	rows := make([]Row, 0, len(sessions))

	for i := range sessions {
		sess := &sessions[i]
		start := sess.StartTime.In(loc)

		end := inProgress
		if sess.EndTime != nil {
			end = sess.EndTime.In(loc).Format(clockLayout)
		}

		earned := noEarnings
		if sess.Earnings() != 0 {
			earned = earnings.FormatINR(sess.Earnings())
		}

		rows = append(rows, Row{
			Date:       start.Format(dateLayout),
			StartTime:  start.Format(clockLayout),
			EndTime:    end,
			Duration:   timeutil.FormatDuration(sess.Duration()),
			HourlyRate: earnings.FormatUSD(sess.HourlyRateUSD),
			Earnings:   earned,
		})
	}

	return rows
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quote(f)
	}

	return strings.Join(quoted, ",")
}

// WriteCSV writes a header line followed by one line per row. Every field is
// double-quoted and lines are separated by a single newline with none after
// the last line.
func WriteCSV(w io.Writer, rows []Row) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvLine(Header))

	for _, r := range rows {
		lines = append(lines, csvLine(r.Fields()))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))

	return err
}

// FileName returns the default report file name for format on the day of
// now.
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("time-entries-%s.%s", now.Format(timeutil.DayKeyLayout), format)
}
