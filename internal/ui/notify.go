package ui

import (
	"io"
	"os"

	"github.com/gen2brain/beeep"
	"github.com/pterm/pterm"
)

// Notifier prints status messages to the terminal and, if Desktop is set,
// mirrors them as desktop notifications.
type Notifier struct {
	Out      io.Writer
	IconPath string
	Desktop  bool
}

// NewNotifier returns a Notifier writing to stdout.
func NewNotifier(desktop bool, iconPath string) *Notifier {
	return &Notifier{
		Out:      os.Stdout,
		Desktop:  desktop,
		IconPath: iconPath,
	}
}

func (n *Notifier) print(p pterm.PrefixPrinter, title, description string) {
	msg := title
	if description != "" {
		msg += ": " + description
	}

	p.WithWriter(n.Out).Println(msg)

	if !n.Desktop {
		return
	}

	if err := beeep.Notify(title, description, n.IconPath); err != nil {
		pterm.Error.WithWriter(n.Out).Printfln(
			"unable to display notification: %v",
			err,
		)
	}
}

func (n *Notifier) Success(title, description string) {
	n.print(pterm.Success, title, description)
}

func (n *Notifier) Info(title, description string) {
	n.print(pterm.Info, title, description)
}

func (n *Notifier) Error(title, description string) {
	n.print(pterm.Error, title, description)
}
