// Package countdown computes the time left until the ship departs.
//
// The departure instant is fixed once, when the clock is created, from the
// anchor date and the configured time of day. It is never re-derived from
// the current date, so a session that runs past midnight after departure
// keeps reporting the departing message rather than a countdown to the
// following day.
package countdown

import (
	"fmt"
	"time"

	"github.com/julianstephens/flamday/internal/constants"
)

// DepartingMessage is shown once the departure time has been reached
const DepartingMessage = "¡BARCO ZARPANDO!"

type Clock struct {
	departure time.Time
}

// New anchors the departure time of day ("HH:MM") on the calendar date of
// anchor, in loc. A nil loc means the anchor's own location.
func New(anchor time.Time, departure string, loc *time.Location) (Clock, error) {
	tod, err := time.Parse(constants.TimeFormat, departure)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid departure time %q: %w", departure, err)
	}
	if loc == nil {
		loc = anchor.Location()
	}
	anchor = anchor.In(loc)
	return Clock{
		departure: time.Date(anchor.Year(), anchor.Month(), anchor.Day(), tod.Hour(), tod.Minute(), 0, 0, loc),
	}, nil
}

// Departure returns the fixed departure instant
func (c Clock) Departure() time.Time {
	return c.departure
}

// Remaining returns departure minus now; zero or negative once departed
func (c Clock) Remaining(now time.Time) time.Duration {
	return c.departure.Sub(now)
}

// Render formats the countdown for display at now
func (c Clock) Render(now time.Time) string {
	return Format(c.Remaining(now))
}

// Format renders d as "{h}h {m}m {s}s" using whole units, or the departing
// message when d is not positive.
func Format(d time.Duration) string {
	if d <= 0 {
		return DepartingMessage
	}
	ms := d.Milliseconds()
	h := ms / 3600000
	m := (ms % 3600000) / 60000
	s := (ms % 60000) / 1000
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
