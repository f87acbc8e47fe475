package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/srworkflow/workflow/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the workflow app instance.
func Get() *cli.App {
	workflowApp := &cli.App{
		Name: "workflow",
		Usage: `
		Workflow is a command-line stopwatch that bills your time. Start a 
		session, pause when you step away and stop when you are done: the 
		elapsed time is converted to earnings at your hourly rate.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "track",
				Usage:  "Open the tracker screen (default command)",
				Flags:  []cli.Flag{rateFlag},
				Action: defaultAction,
			},
			{
				Name:   "history",
				Usage:  "List your time entries grouped by day",
				Flags:  append(filterFlags, jsonFlag),
				Action: historyAction,
			},
			{
				Name: "analytics",
				Usage: `
				Chart tracked time and earnings. Defaults to the current month`,
				Flags:  []cli.Flag{fromFlag, toFlag, viewFlag, jsonFlag},
				Action: analyticsAction,
			},
			{
				Name:   "export",
				Usage:  "Export your time entries to a CSV or PDF report",
				Flags:  append(filterFlags, formatFlag, outputFlag),
				Action: exportAction,
			},
			{
				Name:   "signup",
				Usage:  "Create an account and sign in",
				Flags:  []cli.Flag{emailFlag},
				Action: signUpAction,
			},
			{
				Name:   "signin",
				Usage:  "Sign in to an existing account",
				Flags:  []cli.Flag{emailFlag},
				Action: signInAction,
			},
			{
				Name:   "signout",
				Usage:  "Sign out of the current account",
				Action: signOutAction,
			},
			{
				Name:   "whoami",
				Usage:  "Print the signed-in account",
				Action: whoAmIAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			rateFlag,
			noColorFlag,
			verboseFlag,
			storageFlag,
			sessionCmdFlag,
			notifyFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return workflowApp
}
