package config

import (
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
	"github.com/urfave/cli/v2"

	"github.com/srworkflow/workflow/internal/history"
	"github.com/srworkflow/workflow/internal/timeutil"
)

// FilterConfig holds the history, analytics and export filters.
type FilterConfig struct {
	Criteria history.Criteria
	Format   string
	Output   string
	Order    history.Order
	View     history.View
	JSON     bool
}

// FilterOptions are the raw filter flag values.
type FilterOptions struct {
	From    string
	To      string
	Min     string
	Max     string
	Order   string
	View    string
	Format  string
	Output  string
	JSON    bool
	Reverse bool
}

// Filter reads the filter flags of a history, analytics or export command.
func Filter(ctx *cli.Context, now time.Time) (*FilterConfig, error) {
	return ParseFilter(FilterOptions{
		From:    ctx.String("from"),
		To:      ctx.String("to"),
		Min:     ctx.String("min"),
		Max:     ctx.String("max"),
		Order:   ctx.String("order"),
		View:    ctx.String("view"),
		Format:  ctx.String("format"),
		Output:  ctx.String("output"),
		JSON:    ctx.Bool("json"),
		Reverse: ctx.Bool("reverse"),
	}, now)
}

// ParseFilter validates and converts raw filter values. Dates may be
// written in natural language ("yesterday", "2 weeks ago") and are resolved
// relative to now.
func ParseFilter(opts FilterOptions, now time.Time) (*FilterConfig, error) {
	f := &FilterConfig{
		Order:  history.ParseOrder(opts.Order),
		Format: strings.ToLower(strings.TrimSpace(opts.Format)),
		Output: opts.Output,
		JSON:   opts.JSON,
	}

	if opts.Reverse {
		f.Order = f.Order.Toggle()
	}

	var err error

	f.View, err = history.ParseView(opts.View)
	if err != nil {
		return nil, err
	}

	if f.Criteria.DateFrom, err = parseDate(opts.From, now); err != nil {
		return nil, err
	}

	if f.Criteria.DateTo, err = parseDate(opts.To, now); err != nil {
		return nil, err
	}

	from, to := f.Criteria.DateFrom, f.Criteria.DateTo
	if from != nil && to != nil &&
		timeutil.RoundToStart(*from).After(timeutil.RoundToStart(*to)) {
		return nil, errInvalidRange.Fmt(
			from.Format(timeutil.DayKeyLayout),
			to.Format(timeutil.DayKeyLayout),
		)
	}

	if f.Criteria.MinEarnings, err = parseAmount("min", opts.Min); err != nil {
		return nil, err
	}

	if f.Criteria.MaxEarnings, err = parseAmount("max", opts.Max); err != nil {
		return nil, err
	}

	return f, nil
}

func parseDate(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation(timeutil.DayKeyLayout, s, now.Location()); err == nil {
		return &t, nil
	}

	d, err := dps.Parse(&dps.Configuration{CurrentTime: now}, s)
	if err != nil || d.Time.IsZero() {
		return nil, errInvalidDate.Fmt(s)
	}

	t := d.Time.In(now.Location())

	return &t, nil
}

func parseAmount(name, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, errInvalidAmount.Fmt(name, s)
	}

	return &v, nil
}
