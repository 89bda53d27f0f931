package storage

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("key not found")
	ErrNotLoaded      = errors.New("storage not loaded")
	ErrNotInitialized = errors.New("storage not initialized, run 'flamday init' first")
	// ErrCorrupt means the store file exists but cannot be read as a store
	ErrCorrupt = errors.New("storage file is corrupt")
)

// Provider is a device-local key/value store. Values are opaque serialized
// strings, the way browser local storage holds them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}

// New picks the backing store from the path: a .json file uses the JSON
// store, anything else is treated as a SQLite database.
func New(path string) Provider {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
