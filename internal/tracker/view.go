package tracker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/timer"
	"github.com/srworkflow/workflow/internal/timeutil"
)

func (m *Model) statusView() string {
	label := strings.ToUpper(m.state.Status.String())

	switch m.state.Status {
	case timer.Running:
		return m.style.Running.Render(label)
	case timer.Paused:
		return m.style.Paused.Render(label)
	default:
		return m.style.Idle.Render(label)
	}
}

func (m *Model) timerView() string {
	var s strings.Builder

	s.WriteString(m.statusView())

	if sess := m.activeSession(); sess != "" {
		s.WriteString(m.style.Hint.Render(" " + sess))
	}

	s.WriteString("\n\n")
	s.WriteString(m.style.Main.Render(
		timeutil.FormatClock(timeutil.Seconds(m.state.ElapsedSeconds)),
	))
	s.WriteString("\n\n")
	s.WriteString(m.style.Secondary.Render(
		m.liveEarnings() + " earned at " + earnings.FormatUSD(m.rate()) + "/hour",
	))

	return s.String()
}

func (m *Model) activeSession() string {
	id, ok := m.ctrl.Active()
	if ok {
		started, _ := m.ctrl.StartedAt()

		return fmt.Sprintf(
			"#%s since %s",
			id[:min(8, len(id))],
			started.Local().Format(m.clockLayout()),
		)
	}

	if n := len(m.ctrl.Sessions()); n > 0 {
		return fmt.Sprintf("(%d entries saved)", n)
	}

	return ""
}

func (m *Model) clockLayout() string {
	if m.clock24 {
		return "15:04"
	}

	return "03:04 PM"
}

func (m *Model) noteView() string {
	if m.quitArmed {
		return m.style.Error.Render(quitWarning)
	}

	if m.err != nil {
		return m.style.Error.Render(m.err.Error())
	}

	n := m.feed.last
	if n == nil {
		return ""
	}

	text := n.title
	if n.description != "" {
		text += ": " + n.description
	}

	switch n.kind {
	case noteError:
		return m.style.Error.Render(text)
	case noteSuccess:
		return m.style.Success.Render(text)
	default:
		return m.style.Hint.Render(text)
	}
}

func (m *Model) helpView() string {
	if m.editing {
		return m.help.ShortHelpView([]key.Binding{
			defaultKeymap.enter,
			defaultKeymap.esc,
		})
	}

	bindings := []key.Binding{defaultKeymap.start, defaultKeymap.rate}
	if _, open := m.ctrl.Active(); open {
		bindings = []key.Binding{defaultKeymap.togglePlay, defaultKeymap.stop}
	}

	return m.help.ShortHelpView(append(bindings, defaultKeymap.quit))
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.timerView())

	if m.editing {
		s.WriteString("\n\n" + m.style.Input.Render(m.input.View()))
	}

	if note := m.noteView(); note != "" {
		s.WriteString("\n\n" + note)
	}

	s.WriteString("\n\n" + m.helpView())

	return m.style.Base.Render(s.String())
}
