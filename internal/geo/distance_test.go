package geo

import (
	"math"
	"testing"

	"github.com/julianstephens/flamday/internal/models"
)

var (
	dock          = models.Coordinate{Lat: 60.8638, Lng: 7.1187}
	visitorCenter = models.Coordinate{Lat: 60.8622, Lng: 7.1115}
	myrdal        = models.Coordinate{Lat: 60.7353, Lng: 7.1226}
)

func TestDistanceSamePoint(t *testing.T) {
	for _, c := range []models.Coordinate{dock, visitorCenter, {}, {Lat: -33.9, Lng: 151.2}} {
		if d := Distance(c, c); d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", c, c, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]models.Coordinate{
		{dock, visitorCenter},
		{dock, myrdal},
		{{Lat: 0, Lng: 0}, {Lat: 10, Lng: -20}},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistanceDockToVisitorCenter(t *testing.T) {
	d := Distance(dock, visitorCenter)
	if d <= 100 || d >= 1000 {
		t.Errorf("dock to visitor center = %f m, expected a few hundred meters", d)
	}
	if got := RoundedDistance(dock, visitorCenter); got != math.Round(d) {
		t.Errorf("RoundedDistance = %f, want %f", got, math.Round(d))
	}
}

func TestDistanceKnownMagnitude(t *testing.T) {
	// One degree of latitude is roughly 111.2 km on the mean sphere
	d := Distance(models.Coordinate{Lat: 60, Lng: 7}, models.Coordinate{Lat: 61, Lng: 7})
	if math.Abs(d-111195) > 10 {
		t.Errorf("one degree of latitude = %f m, want ~111195", d)
	}
}

func TestDistanceNaN(t *testing.T) {
	d := Distance(models.Coordinate{Lat: math.NaN(), Lng: 7}, dock)
	if !math.IsNaN(d) {
		t.Errorf("expected NaN, got %f", d)
	}
}
