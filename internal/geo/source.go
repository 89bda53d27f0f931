package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/flamday/internal/models"
)

var (
	// ErrUnavailable means no location source exists or access was denied.
	// Watching stops after this error.
	ErrUnavailable = errors.New("geolocation unavailable")
	// ErrStale means the reading is older than the accepted maximum age
	ErrStale = errors.New("stale position")
)

// Source produces position readings on demand
type Source interface {
	Name() string
	Read(ctx context.Context) (models.Position, error)
}

// NoneSource is used when the device offers no location
type NoneSource struct{}

func (NoneSource) Name() string { return "none" }

func (NoneSource) Read(context.Context) (models.Position, error) {
	return models.Position{}, ErrUnavailable
}

// FixedSource always reports the same coordinate
type FixedSource struct {
	Coord models.Coordinate
	Now   func() time.Time
}

func (s FixedSource) Name() string { return "fixed" }

func (s FixedSource) Read(context.Context) (models.Position, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return models.Position{Coordinate: s.Coord, Timestamp: now()}, nil
}

// FileSource reads the latest reading from a JSON file kept up to date by
// an external GPS bridge, e.g. {"lat": 60.86, "lng": 7.11, "accuracy": 5}.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Read(ctx context.Context) (models.Position, error) {
	if err := ctx.Err(); err != nil {
		return models.Position{}, err
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return models.Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return models.Position{}, fmt.Errorf("failed to stat position file: %w", err)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return models.Position{}, fmt.Errorf("failed to read position file: %w", err)
	}

	var pos models.Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return models.Position{}, fmt.Errorf("failed to parse position file: %w", err)
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = info.ModTime()
	}
	return pos, nil
}

// ParseSource builds a source from its flag form: "none", "fixed:LAT,LNG"
// or "file:PATH".
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	kind, arg, _ := strings.Cut(raw, ":")

	switch strings.ToLower(kind) {
	case "", "none":
		return NoneSource{}, nil
	case "fixed":
		c, err := ParseCoordinate(arg)
		if err != nil {
			return nil, err
		}
		return FixedSource{Coord: c}, nil
	case "file":
		if arg == "" {
			return nil, fmt.Errorf("file source requires a path")
		}
		return FileSource{Path: arg}, nil
	default:
		return nil, fmt.Errorf("unknown gps source %q (use none, fixed:LAT,LNG or file:PATH)", raw)
	}
}

// ParseCoordinate parses "LAT,LNG" in decimal degrees
func ParseCoordinate(s string) (models.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("invalid coordinate %q: expected LAT,LNG", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return models.Coordinate{Lat: lat, Lng: lng}, nil
}
