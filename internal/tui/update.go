package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flamday/internal/app"
	"github.com/julianstephens/flamday/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.timeline.SetSize(msg.Width-4, msg.Height-6)
		m.mapView.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case TickMsg:
		m.ctrl.Tick(time.Time(msg))
		return m, tick()

	case PositionMsg:
		coord := msg.Coordinate
		m.ctrl.SetLocation(&coord)
		m.refresh()
		return m, waitForPosition(m.positions)

	case positionsClosedMsg:
		logger.Debug("Location feed closed")
		m.positions = nil
		return m, nil
	}

	if m.state == StateConfirmReset {
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.ctrl.State().View

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		m.ctrl.Navigate(view.Next())
	case key.Matches(msg, m.keys.ShiftTab):
		m.ctrl.Navigate(view.Prev())
	case key.Matches(msg, m.keys.Views):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			m.ctrl.Navigate(app.View(n - 1))
		}
	case key.Matches(msg, m.keys.Reset):
		return m.startReset()
	default:
		return m.handleViewKey(view, msg)
	}
	return m, nil
}

func (m Model) handleViewKey(view app.View, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch view {
	case app.ViewTimeline:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.timeline.MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.timeline.MoveDown()
		case key.Matches(msg, m.keys.Toggle):
			if act, ok := m.timeline.Selected(); ok {
				m.status = ""
				if err := m.ctrl.ToggleCompletion(act.ID); err != nil {
					m.status = "⚠ No se pudo guardar el progreso"
				}
				m.refresh()
			}
		case key.Matches(msg, m.keys.Locate):
			if act, ok := m.timeline.Selected(); ok {
				m.ctrl.Locate(act.Coords)
				m.refresh()
			}
		}
	case app.ViewGuide:
		var cmd tea.Cmd
		m.guide, cmd = m.guide.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) startReset() (tea.Model, tea.Cmd) {
	m.confirm = &confirmForm{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("¿Reiniciar el progreso del día?").
				Description("Se desmarcarán todas las actividades.").
				Affirmative("Sí").
				Negative("No").
				Value(&m.confirm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
	m.state = StateConfirmReset
	return m, m.form.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			m.closeConfirm()
			return m, nil
		case tea.KeyCtrlC:
			m.quitting = true
			m.shutdown()
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	m.finishConfirm()
	return m, cmd
}

// finishConfirm applies the reset once the form is done
func (m *Model) finishConfirm() {
	switch m.form.State {
	case huh.StateCompleted:
		if m.confirm.Confirmed {
			m.status = ""
			if err := m.ctrl.ResetProgress(); err != nil {
				m.status = "⚠ No se pudo reiniciar el progreso"
			}
			m.refresh()
		}
		m.closeConfirm()
	case huh.StateAborted:
		m.closeConfirm()
	}
}

func (m *Model) closeConfirm() {
	m.form = nil
	m.confirm = nil
	m.state = StateBrowsing
}
