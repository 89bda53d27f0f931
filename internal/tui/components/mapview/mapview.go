// Package mapview draws the itinerary on an offline ASCII projection.
package mapview

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flamday/internal/models"
)

const (
	defaultWidth  = 48
	defaultHeight = 14
	margin        = 0.08
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	legendTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellEnd
	cellDone
	cellPending
	cellUser
)

type cell struct {
	r    rune
	kind cellKind
}

// Bounds is the lat/lng box mapped onto the grid
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

type Model struct {
	activities []models.Activity
	user       *models.Coordinate
	focus      *models.Coordinate
	distance   float64
	hasNext    bool
	width      int
	height     int
}

func New() Model {
	return Model{width: defaultWidth, height: defaultHeight}
}

// SetSize sizes the drawing area to fit the available space
func (m *Model) SetSize(width, height int) {
	m.width = max(16, min(width-30, 72))
	m.height = max(6, min(height-8, 24))
}

// SetData replaces everything the map renders. distance is only shown when
// hasNext is true.
func (m *Model) SetData(activities []models.Activity, user, focus *models.Coordinate, distance float64, hasNext bool) {
	m.activities = activities
	m.user = user
	m.focus = focus
	m.distance = distance
	m.hasNext = hasNext
}

// BoundsOf returns the box around coords with a small margin. A degenerate
// box is widened so every point projects inside the grid.
func BoundsOf(coords []models.Coordinate) Bounds {
	if len(coords) == 0 {
		return Bounds{MinLat: -1, MaxLat: 1, MinLng: -1, MaxLng: 1}
	}
	b := Bounds{
		MinLat: coords[0].Lat, MaxLat: coords[0].Lat,
		MinLng: coords[0].Lng, MaxLng: coords[0].Lng,
	}
	for _, c := range coords[1:] {
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
		b.MinLng = math.Min(b.MinLng, c.Lng)
		b.MaxLng = math.Max(b.MaxLng, c.Lng)
	}

	latPad := math.Max((b.MaxLat-b.MinLat)*margin, 0.001)
	lngPad := math.Max((b.MaxLng-b.MinLng)*margin, 0.001)
	b.MinLat -= latPad
	b.MaxLat += latPad
	b.MinLng -= lngPad
	b.MaxLng += lngPad
	return b
}

// Project maps c to a column and row of a width x height grid, north up.
// Points outside the bounds are clamped to the edge.
func (b Bounds) Project(c models.Coordinate, width, height int) (x, y int) {
	fx := (c.Lng - b.MinLng) / (b.MaxLng - b.MinLng)
	fy := (b.MaxLat - c.Lat) / (b.MaxLat - b.MinLat)
	x = int(math.Round(fx * float64(width-1)))
	y = int(math.Round(fy * float64(height-1)))
	return clamp(x, 0, width-1), clamp(y, 0, height-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (m Model) coords() []models.Coordinate {
	var out []models.Coordinate
	for _, act := range m.activities {
		out = append(out, act.Coords)
		if act.EndCoords != nil {
			out = append(out, *act.EndCoords)
		}
	}
	if m.user != nil && isFinite(*m.user) {
		out = append(out, *m.user)
	}
	if m.focus != nil && isFinite(*m.focus) {
		out = append(out, *m.focus)
	}
	return out
}

func isFinite(c models.Coordinate) bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lng) && !math.IsInf(c.Lat, 0) && !math.IsInf(c.Lng, 0)
}

func (m Model) grid() ([][]cell, Bounds) {
	grid := make([][]cell, m.height)
	for y := range grid {
		grid[y] = make([]cell, m.width)
		for x := range grid[y] {
			grid[y][x] = cell{r: '·'}
		}
	}
	b := BoundsOf(m.coords())

	put := func(c models.Coordinate, r rune, kind cellKind) {
		if !isFinite(c) {
			return
		}
		x, y := b.Project(c, m.width, m.height)
		if grid[y][x].kind <= kind {
			grid[y][x] = cell{r: r, kind: kind}
		}
	}

	for _, act := range m.activities {
		if act.EndCoords != nil {
			put(*act.EndCoords, '+', cellEnd)
		}
	}
	// Walk backwards so the earliest activity wins a shared cell
	for i := len(m.activities) - 1; i >= 0; i-- {
		act := m.activities[i]
		kind := cellPending
		if act.Completed {
			kind = cellDone
		}
		put(act.Coords, marker(act.ID), kind)
	}
	if m.user != nil {
		put(*m.user, '@', cellUser)
	}
	return grid, b
}

func marker(id string) rune {
	if id == "" {
		return '?'
	}
	r, _ := utf8.DecodeRuneInString(id)
	return r
}

// Grid renders the map as plain text rows, without styling
func (m Model) Grid() []string {
	grid, _ := m.grid()
	rows := make([]string, len(grid))
	for y, row := range grid {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.r)
		}
		rows[y] = sb.String()
	}
	return rows
}

func (m Model) View() string {
	grid, b := m.grid()

	fx, fy := -1, -1
	if m.focus != nil && isFinite(*m.focus) {
		fx, fy = b.Project(*m.focus, m.width, m.height)
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		var sb strings.Builder
		for x, c := range row {
			r := string(c.r)
			switch {
			case x == fx && y == fy:
				if c.kind == cellEmpty {
					r = "*"
				}
				sb.WriteString(focusStyle.Render(r))
			case c.kind == cellUser:
				sb.WriteString(userStyle.Render(r))
			case c.kind == cellDone:
				sb.WriteString(doneStyle.Render(r))
			case c.kind == cellEmpty:
				sb.WriteString(mutedStyle.Render(r))
			default:
				sb.WriteString(r)
			}
		}
		rows[y] = sb.String()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		frameStyle.Render(strings.Join(rows, "\n")),
		"  ",
		m.legend(),
	)
}

func (m Model) legend() string {
	lines := []string{legendTitleStyle.Render("Mapa Offline"), ""}
	for _, act := range m.activities {
		line := fmt.Sprintf("%c %s", marker(act.ID), act.Title)
		if act.Completed {
			line = doneStyle.Render(line + " ✓")
		}
		lines = append(lines, line)
	}
	lines = append(lines, mutedStyle.Render("+ destino"), "")

	if m.user != nil {
		lines = append(lines, userStyle.Render("@ Tú: "+m.user.String()))
		if m.hasNext {
			lines = append(lines, fmt.Sprintf("Distancia al sig.: %.0fm", m.distance))
		}
	} else {
		lines = append(lines, mutedStyle.Render("@ Ubicación desconocida"))
	}
	if m.focus != nil {
		lines = append(lines, focusStyle.Render("Foco: "+m.focus.String()))
	}
	return strings.Join(lines, "\n")
}
