package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/flamday/internal/backup"
	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/storage"
)

var errBackupUnsupported = errors.New("backups are only supported for SQLite storage")

func backupManager(ctx *Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
		return nil, errBackupUnsupported
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	ctx.printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path, err := resolveBackup(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	previous, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if previous != "" {
		ctx.printf("Created backup of current store: %s\n", filepath.Base(previous))
	}
	ctx.printf("✓ Restored from: %s\n", filepath.Base(path))
	return ctx.Store.Load()
}

// resolveBackup accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory.
func resolveBackup(mgr *backup.Manager, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	candidate := filepath.Join(mgr.Dir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.Dir())
}
