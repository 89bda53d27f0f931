package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/storage"
)

func setupTestDB(t *testing.T, value string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "flamday.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	defer store.Close()
	if err := store.Put(constants.StorageKey, []byte(value)); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	return dbPath
}

func readValue(t *testing.T, dbPath string) string {
	t.Helper()
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", dbPath, err)
	}
	defer store.Close()
	data, err := store.Get(constants.StorageKey)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dbPath, err)
	}
	return string(data)
}

// steppingClock advances one minute per call
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, `[{"id":"1","completed":true}]`)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.Dir())
	}
	if got := readValue(t, path); got != `[{"id":"1","completed":true}]` {
		t.Errorf("backup value = %s", got)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want ErrNoDatabase", err)
	}
}

func TestUniqueFilenames(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 5, 14, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("List() returned %d backups, want 3", len(backups))
	}
	for _, b := range backups {
		if !b.Timestamp.Equal(fixed) {
			t.Errorf("timestamp of %s = %v, want %v", b.Path, b.Timestamp, fixed)
		}
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 5, 14, 8, 0, 0, 0, time.Local))
	mgr.keep = 3

	var paths []string
	for i := 0; i < 5; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() returned %d backups, want 3", len(backups))
	}
	if backups[0].Path != paths[4] {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, paths[4])
	}
	for _, old := range paths[:2] {
		if _, err := os.Stat(old); !os.IsNotExist(err) {
			t.Errorf("old backup %s was not removed", old)
		}
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t, "[]")
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"notes.txt",
		"flamday-garbage.db",
		"flamday-20260514-0900.db",
		"flamday-20260514-090000-x.db",
		"other-20260514-090000.db",
	} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %v, want none", backups)
	}
}

func TestListWithoutDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "flamday.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %v, want empty", backups)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"flamday-20260514-170000.db", true},
		{"flamday-20260514-170000-3.db", true},
		{"flamday-20260514-170000-0.db", false},
		{"flamday-20260514-170000x.db", false},
		{"flamday-20261314-170000.db", false},
		{"daylit-20260514-170000.db", false},
	}

	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t, `["before"]`)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 5, 14, 8, 0, 0, 0, time.Local))

	saved, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(constants.StorageKey, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	previous, err := mgr.Restore(saved)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := readValue(t, dbPath); got != `["before"]` {
		t.Errorf("restored value = %s", got)
	}
	if previous == "" {
		t.Fatal("Restore() did not back up the current database")
	}
	if got := readValue(t, previous); got != `["after"]` {
		t.Errorf("pre-restore backup value = %s", got)
	}
}

func TestRestoreRejectsInvalidBackups(t *testing.T) {
	dbPath := setupTestDB(t, `["keep"]`)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore() of missing file succeeded")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("this is not a sqlite database, just some text"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(corrupt); err == nil {
		t.Error("Restore() of corrupt file succeeded")
	}

	if got := readValue(t, dbPath); got != `["keep"]` {
		t.Errorf("database changed after failed restore: %s", got)
	}
}
