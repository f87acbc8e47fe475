// Package tracker implements the interactive stopwatch screen
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timer"
)

const quitWarning = "The timer is still running. Press q again to quit and leave the session in progress."

// Options configures the tracker screen.
type Options struct {
	Logger         *slog.Logger
	Feed           *Feed
	Style          Style
	HourlyRate     float64
	TickInterval   time.Duration
	TwentyFourHour bool
}

// Model is the bubbletea model of the tracker screen.
type Model struct {
	ctx        context.Context
	ctrl       *session.Controller
	logger     *slog.Logger
	feed       *Feed
	style      Style
	help       help.Model
	input      textinput.Model
	err        error
	state      timer.State
	interval   time.Duration
	hourlyRate float64
	earned     float64
	tickID     int
	editing    bool
	quitArmed  bool
	clock24    bool
}

type tickMsg struct {
	id int
}

// New returns a tracker screen driving ctrl.
func New(ctx context.Context, ctrl *session.Controller, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if opts.Feed == nil {
		opts.Feed = &Feed{}
	}

	if opts.TickInterval <= 0 {
		opts.TickInterval = timer.DefaultTickInterval
	}

	input := textinput.New()
	input.Placeholder = "hourly rate in USD"
	input.CharLimit = 12
	input.Prompt = "$ "

	return &Model{
		ctx:        ctx,
		ctrl:       ctrl,
		logger:     opts.Logger,
		feed:       opts.Feed,
		style:      opts.Style,
		help:       help.New(),
		input:      input,
		interval:   opts.TickInterval,
		hourlyRate: opts.HourlyRate,
		clock24:    opts.TwentyFourHour,
		state:      ctrl.State(),
	}
}

// HourlyRate returns the rate new sessions start with.
func (m *Model) HourlyRate() float64 {
	return m.hourlyRate
}

func (m *Model) Init() tea.Cmd {
	if m.ctrl.Running() {
		return m.scheduleTick()
	}

	return nil
}

// scheduleTick starts a new tick chain. Ticks from earlier chains are
// ignored so pausing and resuming never runs two chains at once.
func (m *Model) scheduleTick() tea.Cmd {
	m.tickID++

	return m.nextTick()
}

func (m *Model) nextTick() tea.Cmd {
	id := m.tickID

	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) refresh() {
	m.state, m.earned = m.ctrl.Tick()
}

func (m *Model) rate() float64 {
	if r, ok := m.ctrl.Rate(); ok {
		return r
	}

	return m.hourlyRate
}

func (m *Model) liveEarnings() string {
	return earnings.FormatINR(m.earned)
}
