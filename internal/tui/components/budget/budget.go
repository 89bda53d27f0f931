package budget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flamday/internal/itinerary"
	"github.com/julianstephens/flamday/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	paidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

var categoryLabels = map[models.Category]string{
	models.CategoryTransport:   "Transporte",
	models.CategoryFood:        "Comida",
	models.CategorySightseeing: "Turismo",
	models.CategoryShopping:    "Compras",
	models.CategoryLogistics:   "Logística",
}

// CategoryLabel is the display name of a category
func CategoryLabel(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func amount(a itinerary.Amount) string {
	return fmt.Sprintf("%5d NOK  (~%d €)", a.NOK, a.EUR)
}

// View renders the budget summary
func View(b itinerary.Budget) string {
	var lines []string
	for _, act := range b.Lines {
		row := fmt.Sprintf("%-28s %s", act.Title, amount(itinerary.Amount{NOK: act.PriceNOK, EUR: act.PriceEUR}))
		if act.Completed {
			lines = append(lines, paidStyle.Render(row+" ✓"))
		} else {
			lines = append(lines, lineStyle.Render(row))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, paidStyle.Render("Sin gastos previstos."))
	}

	var cats []string
	for _, ct := range b.Categories {
		cats = append(cats, fmt.Sprintf("%-28s %s", CategoryLabel(ct.Category), amount(ct.Amount)))
	}

	summary := strings.Join([]string{
		totalStyle.Render(fmt.Sprintf("%-28s %s", "Total", amount(b.Total))),
		fmt.Sprintf("%-28s %s", "Pagado", amount(b.Spent)),
		fmt.Sprintf("%-28s %s", "Pendiente", amount(b.Pending)),
	}, "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Gastos del día"),
		boxStyle.Render(strings.Join(lines, "\n")),
		headerStyle.Render("Por categoría"),
		boxStyle.Render(strings.Join(cats, "\n")),
		"",
		summary,
	)
}
