package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flamday/internal/app"
	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/countdown"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/tui/components/budget"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.ctrl.State()

	var content string
	switch {
	case m.state == StateConfirmReset && m.form != nil:
		content = m.viewConfirmReset()
	case st.View == app.ViewTimeline:
		content = docStyle.Render(m.timeline.View())
	case st.View == app.ViewMap:
		content = docStyle.Render(m.mapView.View())
	case st.View == app.ViewBudget:
		content = docStyle.Render(budget.View(m.ctrl.Budget()))
	case st.View == app.ViewGuide:
		content = docStyle.Render(m.guide.View())
	}

	parts := []string{m.viewHeader(st), content}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.viewTabs(st.View), m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader(st app.State) string {
	remaining := countdownStyle.Render("⏱ " + st.Countdown)
	if st.Countdown == countdown.DepartingMessage {
		remaining = departedStyle.Render(st.Countdown)
	}

	done, total := itinerary.Progress(st.Itinerary)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		headerStyle.Render(fmt.Sprintf("Salida: %s", m.ctrl.Departure().Format(constants.TimeFormat))),
		" ",
		headerStyle.Render(fmt.Sprintf("Todos a bordo %s", m.ctrl.Onboard().Format(constants.TimeFormat))),
		"  ",
		remaining,
		"  ",
		progressStyle.Render(fmt.Sprintf("%d/%d completadas", done, total)),
	)
}

func (m Model) viewTabs(current app.View) string {
	var tabs []string
	for i, v := range app.Views() {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(max(m.width, 40), max(m.height-6, 8),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Reiniciar progreso"),
			"",
			m.form.View(),
		),
	)
}
