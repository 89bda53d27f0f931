package itinerary

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/models"
)

var ErrUnknownActivity = errors.New("unknown activity")

// Clone deep-copies an activity list, including optional end coordinates
func Clone(list []models.Activity) []models.Activity {
	out := make([]models.Activity, len(list))
	for i, a := range list {
		if a.EndCoords != nil {
			end := *a.EndCoords
			a.EndCoords = &end
		}
		out[i] = a
	}
	return out
}

// Merge overlays saved completion flags onto the static definitions by id.
// Saved ids that are not in the static list are ignored, and static
// activities without a saved entry keep their default flag.
func Merge(static []models.Activity, saved map[string]bool) []models.Activity {
	merged := Clone(static)
	for i := range merged {
		if completed, ok := saved[merged[i].ID]; ok {
			merged[i].Completed = completed
		}
	}
	return merged
}

// Toggle returns a copy of list with the completion flag of id flipped
func Toggle(list []models.Activity, id string) ([]models.Activity, error) {
	out := Clone(list)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, id)
}

// Next returns the first activity in list order that is not completed
func Next(list []models.Activity) (models.Activity, bool) {
	for _, a := range list {
		if !a.Completed {
			return a, true
		}
	}
	return models.Activity{}, false
}

func Find(list []models.Activity, id string) (models.Activity, bool) {
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	return models.Activity{}, false
}

// Completed extracts the id -> completed mapping
func Completed(list []models.Activity) map[string]bool {
	flags := make(map[string]bool, len(list))
	for _, a := range list {
		flags[a.ID] = a.Completed
	}
	return flags
}

// Progress returns how many activities are done out of the total
func Progress(list []models.Activity) (done, total int) {
	for _, a := range list {
		if a.Completed {
			done++
		}
	}
	return done, len(list)
}

// Validate checks ids, time windows and categories of an activity list
func Validate(list []models.Activity) error {
	seen := make(map[string]bool, len(list))
	for _, a := range list {
		if a.ID == "" {
			return fmt.Errorf("activity %q has an empty id", a.Title)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate activity id: %s", a.ID)
		}
		seen[a.ID] = true

		start, err := time.Parse(constants.TimeFormat, a.StartTime)
		if err != nil {
			return fmt.Errorf("activity %s: invalid start time %q: %w", a.ID, a.StartTime, err)
		}
		end, err := time.Parse(constants.TimeFormat, a.EndTime)
		if err != nil {
			return fmt.Errorf("activity %s: invalid end time %q: %w", a.ID, a.EndTime, err)
		}
		if end.Before(start) {
			return fmt.Errorf("activity %s ends (%s) before it starts (%s)", a.ID, a.EndTime, a.StartTime)
		}
		if !a.Type.Valid() {
			return fmt.Errorf("activity %s: unknown category %q", a.ID, a.Type)
		}
	}
	return nil
}
