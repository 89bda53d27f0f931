package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/models"
)

type DayCmd struct{}

func (c *DayCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	st := ctrl.State()

	ctx.printf("Flåm %s · Salida: %s · Todos a bordo %s\n",
		ctrl.Departure().Format(constants.DateFormat),
		ctrl.Departure().Format(constants.TimeFormat),
		ctrl.Onboard().Format(constants.TimeFormat))
	ctx.printf("Cuenta atrás: %s\n\n", st.Countdown)

	for _, act := range st.Itinerary {
		ctx.println(formatActivity(act))
	}

	done, total := itinerary.Progress(st.Itinerary)
	ctx.printf("\n%d/%d completadas", done, total)
	if next, ok := ctrl.NextActivity(); ok {
		ctx.printf(" · Siguiente: %s (%s)\n", next.Title, next.StartTime)
	} else {
		ctx.println(" · ¡Día completado!")
	}
	return nil
}

func formatActivity(act models.Activity) string {
	check := "[ ]"
	if act.Completed {
		check = "[x]"
	}
	place := act.LocationName
	if act.Moves() && act.EndLocationName != "" {
		place += " → " + act.EndLocationName
	}
	line := fmt.Sprintf("  %s %s  %s-%s  %s · %s", check, act.ID, act.StartTime, act.EndTime, act.Title, place)
	if act.Critical() {
		line += "  ¡CRÍTICO!"
	} else if act.Notes != "" {
		line += "  (" + act.Notes + ")"
	}
	return line
}

type ToggleCmd struct {
	ID string `arg:"" help:"Activity id to mark or unmark as completed."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	if err := ctrl.ToggleCompletion(c.ID); err != nil {
		return fmt.Errorf("failed to toggle activity %s: %w", c.ID, err)
	}

	act, _ := itinerary.Find(ctrl.State().Itinerary, c.ID)
	if act.Completed {
		ctx.printf("✓ Completada: %s\n", act.Title)
	} else {
		ctx.printf("○ Pendiente: %s\n", act.Title)
	}
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		ctx.printf("¿Reiniciar el progreso del día? [s/N]: ")
		reader := bufio.NewReader(ctx.In)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "s" && answer != "si" && answer != "sí" && answer != "y" && answer != "yes" {
			ctx.println("Cancelado.")
			return nil
		}
	}

	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	if err := ctrl.ResetProgress(); err != nil {
		return err
	}
	ctx.println("✓ Progreso reiniciado.")
	return nil
}
