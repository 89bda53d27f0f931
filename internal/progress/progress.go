// Package progress persists activity completion flags as a serialized
// snapshot of the itinerary under a single storage key.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/logger"
	"github.com/julianstephens/flamday/internal/models"
	"github.com/julianstephens/flamday/internal/storage"
)

type Adapter struct {
	store storage.Provider
	key   string
}

func New(store storage.Provider) *Adapter {
	return &Adapter{store: store, key: constants.StorageKey}
}

// entry is the subset of a stored activity needed to restore progress.
// Older snapshots may carry fields that no longer exist; they are ignored.
type entry struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// Load returns the persisted completion flags by activity id. A missing,
// unreadable or malformed snapshot yields an empty map so the caller falls
// back to the static defaults.
func (a *Adapter) Load() map[string]bool {
	saved := make(map[string]bool)

	data, err := a.store.Get(a.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read saved progress", "key", a.key, "error", err)
		}
		return saved
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("Ignoring malformed saved progress", "key", a.key, "error", err)
		return saved
	}

	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		saved[e.ID] = e.Completed
	}
	logger.Debug("Loaded saved progress", "entries", len(saved))
	return saved
}

// Restore merges the persisted flags onto the static itinerary
func (a *Adapter) Restore(static []models.Activity) []models.Activity {
	return itinerary.Merge(static, a.Load())
}

// Save writes the full itinerary snapshot
func (a *Adapter) Save(list []models.Activity) error {
	if list == nil {
		list = []models.Activity{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to serialize progress: %w", err)
	}
	if err := a.store.Put(a.key, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Reset removes the persisted snapshot
func (a *Adapter) Reset() error {
	if err := a.store.Delete(a.key); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil
}

// Verify reports whether the persisted snapshot can be read and parsed.
// A missing snapshot is not an error.
func (a *Adapter) Verify() error {
	data, err := a.store.Get(a.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("malformed snapshot under %s: %w", a.key, err)
	}
	return nil
}

func (a *Adapter) Key() string {
	return a.key
}
