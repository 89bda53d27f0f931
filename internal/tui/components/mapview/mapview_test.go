package mapview

import (
	"math"
	"strings"
	"testing"

	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/models"
)

func TestProjectNorthUp(t *testing.T) {
	b := BoundsOf([]models.Coordinate{itinerary.Myrdal, itinerary.StegasteinViewpoint, itinerary.Gudvangen})

	_, ySouth := b.Project(itinerary.Myrdal, 40, 10)
	_, yNorth := b.Project(itinerary.StegasteinViewpoint, 40, 10)
	if yNorth >= ySouth {
		t.Errorf("north y = %d, south y = %d; want north above south", yNorth, ySouth)
	}

	xWest, _ := b.Project(itinerary.Gudvangen, 40, 10)
	xEast, _ := b.Project(itinerary.StegasteinViewpoint, 40, 10)
	if xWest >= xEast {
		t.Errorf("west x = %d, east x = %d; want west left of east", xWest, xEast)
	}
}

func TestProjectClampsAndDegenerateBounds(t *testing.T) {
	b := BoundsOf([]models.Coordinate{itinerary.FlamDock})
	x, y := b.Project(itinerary.FlamDock, 21, 11)
	if x != 10 || y != 5 {
		t.Errorf("single point projects to (%d, %d), want centre (10, 5)", x, y)
	}

	x, y = b.Project(models.Coordinate{Lat: 90, Lng: -180}, 21, 11)
	if x != 0 || y != 0 {
		t.Errorf("far north-west projects to (%d, %d), want (0, 0)", x, y)
	}

	empty := BoundsOf(nil)
	if empty.MaxLat <= empty.MinLat || empty.MaxLng <= empty.MinLng {
		t.Errorf("BoundsOf(nil) = %+v", empty)
	}
}

func contains(rows []string, r string) bool {
	for _, row := range rows {
		if strings.Contains(row, r) {
			return true
		}
	}
	return false
}

func TestGridMarkers(t *testing.T) {
	m := New()
	m.SetData(itinerary.Default(), nil, nil, 0, false)

	rows := m.Grid()
	if len(rows) != defaultHeight {
		t.Fatalf("grid has %d rows, want %d", len(rows), defaultHeight)
	}
	for _, id := range []string{"1", "2", "+"} {
		if !contains(rows, id) {
			t.Errorf("marker %s missing from grid:\n%s", id, strings.Join(rows, "\n"))
		}
	}
	if contains(rows, "@") {
		t.Error("user marker drawn without a location")
	}

	here := itinerary.Gudvangen
	m.SetData(itinerary.Default(), &here, nil, 0, false)
	if !contains(m.Grid(), "@") {
		t.Error("user marker missing")
	}
}

func TestGridIgnoresNaN(t *testing.T) {
	m := New()
	bad := models.Coordinate{Lat: math.NaN(), Lng: 7}
	m.SetData(itinerary.Default(), &bad, &bad, math.NaN(), true)
	if contains(m.Grid(), "@") {
		t.Error("NaN location drawn on the grid")
	}
}

func TestViewLegend(t *testing.T) {
	m := New()
	m.SetData(itinerary.Default(), nil, nil, 0, false)
	view := m.View()
	if !strings.Contains(view, "Mapa Offline") {
		t.Error("legend title missing")
	}
	if !strings.Contains(view, "Ubicación desconocida") {
		t.Error("unknown location hint missing")
	}
	if strings.Contains(view, "Distancia al sig.") {
		t.Error("distance shown without a location")
	}

	here := itinerary.FlamDock
	m.SetData(itinerary.Default(), &here, nil, 230, true)
	view = m.View()
	if !strings.Contains(view, "Distancia al sig.: 230m") {
		t.Errorf("distance to next missing:\n%s", view)
	}
}

func TestViewFocus(t *testing.T) {
	m := New()
	focus := models.Coordinate{Lat: 60.80, Lng: 6.95}
	m.SetData(itinerary.Default(), nil, &focus, 0, false)
	view := m.View()
	if !strings.Contains(view, "*") {
		t.Error("focused empty cell not marked")
	}
	if !strings.Contains(view, "Foco: 60.8000, 6.9500") {
		t.Errorf("focus legend missing:\n%s", view)
	}
}

func TestSetSizeBounds(t *testing.T) {
	m := New()
	m.SetSize(10, 5)
	if m.width < 16 || m.height < 6 {
		t.Errorf("size = %dx%d, want at least 16x6", m.width, m.height)
	}
	m.SetSize(500, 200)
	if m.width > 72 || m.height > 24 {
		t.Errorf("size = %dx%d, want at most 72x24", m.width, m.height)
	}
}
