package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flamday/internal/geo"
	"github.com/julianstephens/flamday/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			PaddingLeft(17)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			PaddingLeft(17)

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	distanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))
)

type Model struct {
	items    []models.Activity
	location *models.Coordinate
	cursor   int
	width    int
	height   int
}

func New(items []models.Activity) Model {
	return Model{items: items}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetItems replaces the rendered activities and the current location,
// keeping the cursor in range.
func (m *Model) SetItems(items []models.Activity, location *models.Coordinate) {
	m.items = items
	m.location = location
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the activity under the cursor
func (m Model) Selected() (models.Activity, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.Activity{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) View() string {
	if len(m.items) == 0 {
		return "No hay actividades."
	}

	var b strings.Builder
	for i, act := range m.items {
		selected := i == m.cursor

		pointer := "  "
		if selected {
			pointer = cursorStyle.Render("▶ ")
		}
		check := "[ ]"
		if act.Completed {
			check = "[x]"
		}

		title := titleStyle.Render(act.Title)
		if act.Completed {
			title = doneStyle.Render(act.Title)
		}
		if act.Critical() {
			title += " " + criticalStyle.Render("¡CRÍTICO!")
		}

		b.WriteString(fmt.Sprintf("%s%s %s%s\n",
			pointer, check, timeStyle.Render(act.StartTime+" - "+act.EndTime), title))
		b.WriteString(detailStyle.Render(m.place(act)) + "\n")

		if selected {
			b.WriteString(detailStyle.Render(act.Description) + "\n")
			if act.KeyDetails != "" {
				b.WriteString(keyStyle.Render(act.KeyDetails) + "\n")
			}
			if act.Notes != "" && !act.Critical() {
				b.WriteString(detailStyle.Render("Nota: "+act.Notes) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) place(act models.Activity) string {
	line := act.LocationName
	if act.Moves() && act.EndLocationName != "" {
		line += " → " + act.EndLocationName
	}
	if act.PriceNOK > 0 || act.PriceEUR > 0 {
		line += fmt.Sprintf(" · %d NOK (~%d €)", act.PriceNOK, act.PriceEUR)
	}
	if m.location != nil {
		d := geo.RoundedDistance(*m.location, act.Coords)
		line += " · " + distanceStyle.Render(FormatDistance(d))
	}
	return line
}

// FormatDistance renders a distance in whole meters
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.0fm", meters)
}
