package app

import (
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/models"
)

// State is everything the views render. Location and Focus are nil until
// known.
type State struct {
	Itinerary []models.Activity
	Location  *models.Coordinate
	Countdown string
	View      View
	Focus     *models.Coordinate
}

// Snapshot returns a deep copy that callers may hold or modify freely
func (s State) Snapshot() State {
	out := s
	out.Itinerary = itinerary.Clone(s.Itinerary)
	out.Location = copyCoord(s.Location)
	out.Focus = copyCoord(s.Focus)
	return out
}

func copyCoord(c *models.Coordinate) *models.Coordinate {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
