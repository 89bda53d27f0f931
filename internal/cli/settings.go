package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/geo"
)

// Settings are the per-run options shared by every command
type Settings struct {
	Departure string
	Onboard   string
	Timezone  string
	Date      string
	GPS       string
}

func DefaultSettings() Settings {
	return Settings{
		Departure: constants.ShipDepartureTime,
		Onboard:   constants.ShipOnboardTime,
		Timezone:  constants.DefaultTimezone,
		GPS:       constants.DefaultGPS,
	}
}

func (s Settings) Validate() error {
	if _, err := time.Parse(constants.TimeFormat, s.Departure); err != nil {
		return fmt.Errorf("invalid departure time %q, use HH:MM", s.Departure)
	}
	if _, err := time.Parse(constants.TimeFormat, s.Onboard); err != nil {
		return fmt.Errorf("invalid onboard time %q, use HH:MM", s.Onboard)
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	if s.Date != "" {
		if _, err := time.Parse(constants.DateFormat, s.Date); err != nil {
			return fmt.Errorf("invalid date %q, use YYYY-MM-DD", s.Date)
		}
	}
	if _, err := geo.ParseSource(s.GPS); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone; empty means local time
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Anchor returns the instant whose calendar date fixes the departure: the
// configured date when set, otherwise now.
func (s Settings) Anchor(now time.Time, loc *time.Location) (time.Time, error) {
	if s.Date == "" {
		return now.In(loc), nil
	}
	d, err := time.ParseInLocation(constants.DateFormat, s.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s.Date)
	}
	return d, nil
}
