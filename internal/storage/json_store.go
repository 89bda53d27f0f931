package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type document struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every key in a single JSON file
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Init creates an empty store file, or loads the existing one
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{Version: 1, Values: make(map[string]string)}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrCorrupt, s.path, err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]string)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated store
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	value, ok := s.doc.Values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return []byte(value), nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.Values[key] = string(value)
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	if _, ok := s.doc.Values[key]; !ok {
		return nil
	}
	delete(s.doc.Values, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
