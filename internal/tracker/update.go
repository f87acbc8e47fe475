package tracker

import (
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/timer"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != m.tickID || !m.ctrl.Running() {
			return m, nil
		}

		m.refresh()

		return m, m.nextTick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		m.logger.Debug("key press", slog.String("msg", spew.Sdump(msg)))

		if m.editing {
			return m.handleRateInput(msg)
		}

		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, defaultKeymap.quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, defaultKeymap.quit):
		if m.ctrl.Running() && !m.quitArmed {
			m.quitArmed = true
			return m, nil
		}

		return m, tea.Quit

	case key.Matches(msg, defaultKeymap.start):
		if _, open := m.ctrl.Active(); open {
			return m, nil
		}

		if m.act(func() error { return m.ctrl.OnStart(m.ctx, m.hourlyRate) }) {
			return m, nil
		}

		m.refresh()

		return m, m.scheduleTick()

	case key.Matches(msg, defaultKeymap.togglePlay):
		if m.act(m.ctrl.OnPauseResume) {
			return m, nil
		}

		m.refresh()

		if m.state.Status == timer.Running {
			return m, m.scheduleTick()
		}

		return m, nil

	case key.Matches(msg, defaultKeymap.stop):
		m.act(func() error {
			_, err := m.ctrl.OnStop(m.ctx)
			return err
		})
		m.refresh()

		return m, nil

	case key.Matches(msg, defaultKeymap.rate):
		if _, open := m.ctrl.Active(); open {
			return m, nil
		}

		m.editing = true
		m.input.SetValue(strconv.FormatFloat(m.hourlyRate, 'f', -1, 64))
		m.input.CursorEnd()

		return m, m.input.Focus()
	}

	return m, nil
}

// act runs a controller operation and reports whether it failed. Failures
// the controller already announced through the feed are not repeated.
func (m *Model) act(fn func() error) bool {
	before := m.feed.last
	err := fn()

	m.err = nil
	if err != nil && m.feed.last == before {
		m.err = err
	}

	return err != nil
}

func (m *Model) handleRateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.enter):
		m.hourlyRate = earnings.ParseRate(m.input.Value())
		m.editing = false
		m.input.Blur()

		return m, nil

	case key.Matches(msg, defaultKeymap.esc):
		m.editing = false
		m.input.Blur()

		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}
