package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/flamday/internal/geo"
	"github.com/julianstephens/flamday/internal/logger"
	"github.com/julianstephens/flamday/internal/tui"
)

type TuiCmd struct{}

func interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *TuiCmd) Run(ctx *Context) error {
	if !interactive() {
		logger.Info("Stdout is not a terminal, printing the day instead")
		return (&DayCmd{}).Run(ctx)
	}

	ctx.PerformAutomaticBackup()

	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}

	src, err := geo.ParseSource(ctx.Settings.GPS)
	if err != nil {
		return err
	}
	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := geo.Watch(watchCtx, src, geo.DefaultOptions())
	defer sub.Release()

	model := tui.NewModel(ctrl, tui.WithPositions(sub.Updates(), sub.Release))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
