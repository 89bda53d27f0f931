package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/flamday/internal/app"
	"github.com/julianstephens/flamday/internal/backup"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/logger"
	"github.com/julianstephens/flamday/internal/progress"
	"github.com/julianstephens/flamday/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Progress *progress.Adapter
	Settings Settings
	Out      io.Writer
	In       io.Reader
	Now      func() time.Time
}

func NewContext(store storage.Provider, settings Settings) *Context {
	return &Context{
		Store:    store,
		Progress: progress.New(store),
		Settings: settings,
		Out:      os.Stdout,
		In:       os.Stdin,
		Now:      time.Now,
	}
}

// Open loads the store, creating it on first use. A corrupt store is moved
// aside and replaced with a fresh one so the day starts from the defaults.
func (c *Context) Open() error {
	err := c.Store.Load()
	switch {
	case errors.Is(err, storage.ErrNotInitialized):
		logger.Info("Storage not found, initializing", "path", c.Store.GetConfigPath())
		err = c.Store.Init()
	case errors.Is(err, storage.ErrCorrupt):
		err = c.recoverCorrupt(err)
	}
	return err
}

func (c *Context) recoverCorrupt(cause error) error {
	path := c.Store.GetConfigPath()
	if err := c.Store.Close(); err != nil {
		logger.Warn("Failed to close corrupt storage", "path", path, "error", err)
	}

	aside := fmt.Sprintf("%s.corrupt-%s", path, c.now().Format("20060102-150405"))
	if err := os.Rename(path, aside); err != nil {
		return fmt.Errorf("failed to move corrupt storage aside: %w", err)
	}
	logger.Warn("Storage was corrupt, starting from defaults", "path", path, "moved_to", aside, "error", cause)
	return c.Store.Init()
}

// Controller builds the application controller from the saved progress
func (c *Context) Controller() (*app.Controller, error) {
	loc, err := c.Settings.Location()
	if err != nil {
		return nil, err
	}
	anchor, err := c.Settings.Anchor(c.now(), loc)
	if err != nil {
		return nil, err
	}

	static := itinerary.Default()
	return app.New(static, c.Progress.Restore(static), c.Progress, app.Config{
		Departure: c.Settings.Departure,
		Onboard:   c.Settings.Onboard,
		Anchor:    anchor,
		Location:  loc,
	})
}

// PerformAutomaticBackup backs up a SQLite store and logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		logger.Debug("Skipping automatic backup for non-SQLite storage")
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
