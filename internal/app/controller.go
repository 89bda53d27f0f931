// Package app holds the application state and the operations that change it.
// Views read snapshots and route every mutation through the Controller.
package app

import (
	"fmt"
	"time"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/countdown"
	"github.com/julianstephens/flamday/internal/geo"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/logger"
	"github.com/julianstephens/flamday/internal/models"
)

// Persister stores completion progress
type Persister interface {
	Save(list []models.Activity) error
	Reset() error
}

type Config struct {
	Departure string // HH:MM
	Onboard   string // HH:MM
	Anchor    time.Time
	Location  *time.Location
}

func DefaultConfig() Config {
	return Config{
		Departure: constants.ShipDepartureTime,
		Onboard:   constants.ShipOnboardTime,
		Anchor:    time.Now(),
	}
}

type Controller struct {
	state   State
	static  []models.Activity
	store   Persister
	clock   countdown.Clock
	onboard time.Time
}

// New builds a controller over the restored itinerary. static is the
// pristine definition used when progress is reset.
func New(static, restored []models.Activity, store Persister, cfg Config) (*Controller, error) {
	clock, err := countdown.New(cfg.Anchor, cfg.Departure, cfg.Location)
	if err != nil {
		return nil, err
	}
	onboard, err := countdown.New(cfg.Anchor, cfg.Onboard, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid onboard time: %w", err)
	}

	c := &Controller{
		static:  itinerary.Clone(static),
		store:   store,
		clock:   clock,
		onboard: onboard.Departure(),
		state: State{
			Itinerary: itinerary.Clone(restored),
			View:      ViewTimeline,
		},
	}
	c.Tick(cfg.Anchor)
	return c, nil
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() State {
	return c.state.Snapshot()
}

// ToggleCompletion flips the completion flag of id and persists the whole
// itinerary. When saving fails the toggle is kept in memory and the error is
// returned.
func (c *Controller) ToggleCompletion(id string) error {
	next, err := itinerary.Toggle(c.state.Itinerary, id)
	if err != nil {
		return err
	}
	c.state.Itinerary = next

	act, _ := itinerary.Find(next, id)
	logger.Debug("Toggled activity", "id", id, "completed", act.Completed)

	if c.store == nil {
		return nil
	}
	if err := c.store.Save(next); err != nil {
		logger.Error("Failed to persist progress", "id", id, "error", err)
		return err
	}
	return nil
}

// ResetProgress clears every completion flag and the persisted snapshot
func (c *Controller) ResetProgress() error {
	c.state.Itinerary = itinerary.Clone(c.static)
	if c.store == nil {
		return nil
	}
	if err := c.store.Reset(); err != nil {
		logger.Error("Failed to reset progress", "error", err)
		return err
	}
	logger.Info("Progress reset")
	return nil
}

// SetLocation replaces the current location; nil clears it
func (c *Controller) SetLocation(loc *models.Coordinate) {
	c.state.Location = copyCoord(loc)
}

// Tick refreshes the countdown text for now
func (c *Controller) Tick(now time.Time) {
	c.state.Countdown = c.clock.Render(now)
}

func (c *Controller) Navigate(v View) {
	if !v.Valid() {
		return
	}
	c.state.View = v
}

// Locate shows coord on the map
func (c *Controller) Locate(coord models.Coordinate) {
	c.state.Focus = &coord
	c.state.View = ViewMap
}

func (c *Controller) NextActivity() (models.Activity, bool) {
	return itinerary.Next(c.state.Itinerary)
}

// DistanceTo returns the rounded distance in meters from the current
// location to coord, false while the location is unknown.
func (c *Controller) DistanceTo(coord models.Coordinate) (float64, bool) {
	if c.state.Location == nil {
		return 0, false
	}
	return geo.RoundedDistance(*c.state.Location, coord), true
}

// DistanceToNext returns the distance to the next pending activity
func (c *Controller) DistanceToNext() (float64, bool) {
	next, ok := c.NextActivity()
	if !ok {
		return 0, false
	}
	return c.DistanceTo(next.Coords)
}

func (c *Controller) Budget() itinerary.Budget {
	return itinerary.Summarize(c.state.Itinerary)
}

func (c *Controller) Departure() time.Time {
	return c.clock.Departure()
}

func (c *Controller) Onboard() time.Time {
	return c.onboard
}

func (c *Controller) Clock() countdown.Clock {
	return c.clock
}
