package cli

import (
	"fmt"
	"os"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized flamday storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
