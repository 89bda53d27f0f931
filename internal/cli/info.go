package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/flamday/internal/constants"
	"github.com/julianstephens/flamday/internal/geo"
	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/tui/components/budget"
)

type BudgetCmd struct{}

func (c *BudgetCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	ctx.println(budget.View(ctrl.Budget()))
	return nil
}

type GuideCmd struct{}

func (c *GuideCmd) Run(ctx *Context) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("Palabra", "Fonética", "Se dice", "Significado")
	for _, p := range itinerary.Pronunciations() {
		t.Row(p.Word, p.Phonetic, p.Simplified, p.Meaning)
	}
	ctx.println(t.Render())
	return nil
}

type CountdownCmd struct{}

func (c *CountdownCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	ctrl.Tick(ctx.now())
	ctx.printf("Salida: %s · %s\n", ctrl.Departure().Format(constants.TimeFormat), ctrl.State().Countdown)
	return nil
}

type DistanceCmd struct {
	From string `required:"" help:"Current position as LAT,LNG."`
}

func (c *DistanceCmd) Run(ctx *Context) error {
	from, err := geo.ParseCoordinate(c.From)
	if err != nil {
		return err
	}
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	ctrl.SetLocation(&from)

	next, ok := ctrl.NextActivity()
	if !ok {
		ctx.println("Todas las actividades completadas.")
		return nil
	}
	d, _ := ctrl.DistanceToNext()
	ctx.printf("Distancia al sig.: %.0fm · %s (%s)\n", d, next.Title, next.LocationName)
	return nil
}
