package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flamday/internal/app"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/models"
	"github.com/julianstephens/flamday/internal/tui/components/guide"
	"github.com/julianstephens/flamday/internal/tui/components/mapview"
	"github.com/julianstephens/flamday/internal/tui/components/timeline"
)

type SessionState int

const (
	StateBrowsing SessionState = iota
	StateConfirmReset
)

// TickMsg drives the countdown once per second
type TickMsg time.Time

// PositionMsg carries a live location reading
type PositionMsg models.Position

// positionsClosedMsg is sent once the location feed has been released
type positionsClosedMsg struct{}

type confirmForm struct {
	Confirmed bool
}

type Model struct {
	ctrl      *app.Controller
	positions <-chan models.Position
	release   func()
	state     SessionState
	keys      KeyMap
	help      help.Model
	timeline  timeline.Model
	mapView   mapview.Model
	guide     guide.Model
	form      *huh.Form
	confirm   *confirmForm
	status    string
	quitting  bool
	width     int
	height    int
}

type Option func(*Model)

// WithPositions feeds live readings from ch into the controller. release is
// called once when the program quits.
func WithPositions(ch <-chan models.Position, release func()) Option {
	return func(m *Model) {
		m.positions = ch
		m.release = release
	}
}

func NewModel(ctrl *app.Controller, opts ...Option) Model {
	st := ctrl.State()
	m := Model{
		ctrl:     ctrl,
		state:    StateBrowsing,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		timeline: timeline.New(st.Itinerary),
		mapView:  mapview.New(),
		guide:    guide.New(itinerary.Pronunciations()),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForPosition(ch <-chan models.Position) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		pos, ok := <-ch
		if !ok {
			return positionsClosedMsg{}
		}
		return PositionMsg(pos)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForPosition(m.positions))
}

// refresh pushes the controller state into the components
func (m *Model) refresh() {
	st := m.ctrl.State()
	m.timeline.SetItems(st.Itinerary, st.Location)
	dist, ok := m.ctrl.DistanceToNext()
	m.mapView.SetData(st.Itinerary, st.Location, st.Focus, dist, ok)
}

func (m *Model) shutdown() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
}

// Controller exposes the underlying controller, mainly for inspection
func (m Model) Controller() *app.Controller {
	return m.ctrl
}

func (m Model) State() SessionState {
	return m.state
}
