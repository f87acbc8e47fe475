package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Write debug messages to the log file",
	}

	storageFlag = &cli.StringFlag{
		Name:  "storage",
		Usage: "Storage backend for time entries: bolt or sqlite",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session is saved",
	}

	notifyFlag = &cli.BoolFlag{
		Name:  "notify",
		Usage: "Show a desktop notification when a session starts or stops",
	}

	rateFlag = &cli.StringFlag{
		Name:    "rate",
		Aliases: []string{"r"},
		Usage:   "Hourly rate in USD for new sessions (default: 5)",
	}

	fromFlag = &cli.StringFlag{
		Name:    "from",
		Aliases: []string{"f"},
		Usage:   "Only include sessions started on or after this day (e.g. '2024-03-01', 'last monday')",
	}

	toFlag = &cli.StringFlag{
		Name:    "to",
		Aliases: []string{"t"},
		Usage:   "Only include sessions started on or before this day",
	}

	minFlag = &cli.StringFlag{
		Name:  "min",
		Usage: "Only include sessions that earned at least this amount in INR",
	}

	maxFlag = &cli.StringFlag{
		Name:  "max",
		Usage: "Only include sessions that earned at most this amount in INR",
	}

	orderFlag = &cli.StringFlag{
		Name:  "order",
		Usage: "Sort days in 'asc' or 'desc' order",
		Value: "desc",
	}

	reverseFlag = &cli.BoolFlag{
		Name:  "reverse",
		Usage: "Reverse the sort order",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the results as JSON",
	}

	viewFlag = &cli.StringFlag{
		Name:  "view",
		Usage: "Chart bucket size: day, week or month",
		Value: "day",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Export format: csv or pdf",
		Value: "csv",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path of the exported file (default: time-entries-<date>.<format>)",
	}

	emailFlag = &cli.StringFlag{
		Name:     "email",
		Aliases:  []string{"e"},
		Usage:    "Account email address",
		Required: true,
	}
)

var filterFlags = []cli.Flag{
	fromFlag,
	toFlag,
	minFlag,
	maxFlag,
	orderFlag,
	reverseFlag,
}
