package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/flamday/internal/backup"
	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/geo"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*Context) error
	warnOnly bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorage},
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Saved progress", run: checkProgress},
	{name: "Itinerary data", run: checkItinerary},
	{name: "Clock/timezone", run: checkClock},
	{name: "Backups present", run: checkBackups, warnOnly: true},
	{name: "Location source", run: checkLocation, warnOnly: true},
	{name: "Visit date", run: checkVisitDate, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	storageOK := true
	for _, c := range checks {
		if !storageOK && (c.name == "Schema version" || c.name == "Saved progress") {
			ctx.printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.printf("⚠ %s: WARNING\n", c.name)
			ctx.printf("   %v\n", err)
		default:
			ctx.printf("❌ %s: FAIL\n", c.name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				storageOK = false
			}
		}
	}

	ctx.println()
	if hasError {
		return fmt.Errorf("diagnostics failed")
	}
	ctx.println("All checks passed.")
	return nil
}

func checkStorage(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.Get(constants.StorageKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sqlite, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}
	current, latest, err := sqlite.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d; run 'flamday init' to migrate", current, latest)
	}
	return nil
}

func checkProgress(ctx *Context) error {
	return ctx.Progress.Verify()
}

func checkItinerary(*Context) error {
	return itinerary.Validate(itinerary.Default())
}

func checkClock(ctx *Context) error {
	loc, err := ctx.Settings.Location()
	if err != nil {
		return err
	}
	now := ctx.now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	_, err = ctx.Settings.Anchor(now, loc)
	return err
}

func checkBackups(ctx *Context) error {
	if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	return nil
}

func checkLocation(ctx *Context) error {
	src, err := geo.ParseSource(ctx.Settings.GPS)
	if err != nil {
		return err
	}
	readCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := src.Read(readCtx); err != nil {
		return fmt.Errorf("%s source: %w", src.Name(), err)
	}
	return nil
}

func checkVisitDate(ctx *Context) error {
	loc, err := ctx.Settings.Location()
	if err != nil {
		return err
	}
	anchor, err := ctx.Settings.Anchor(ctx.now(), loc)
	if err != nil {
		return err
	}
	if day := anchor.Format(constants.DateFormat); day != constants.DateOfVisit {
		return fmt.Errorf("countdown anchored on %s, the planned visit is %s (use --date)", day, constants.DateOfVisit)
	}
	return nil
}
