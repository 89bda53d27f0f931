package models

import (
	"fmt"
	"time"
)

// Coordinate is a latitude/longitude pair in decimal degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// Position is a single live reading from a location source
type Position struct {
	Coordinate
	Accuracy  float64   `json:"accuracy,omitempty"` // meters, 0 when unknown
	Timestamp time.Time `json:"timestamp"`
}
