package itinerary

import "github.com/julianstephens/flamday/internal/models"

// Amount is a price in both currencies
type Amount struct {
	NOK int
	EUR int
}

func (a *Amount) add(act models.Activity) {
	a.NOK += act.PriceNOK
	a.EUR += act.PriceEUR
}

// CategoryTotal is the spend for one category
type CategoryTotal struct {
	Category models.Category
	Amount
}

// Budget summarizes prices across the itinerary
type Budget struct {
	Total      Amount
	Spent      Amount // completed activities
	Pending    Amount // activities still ahead
	Categories []CategoryTotal
	Lines      []models.Activity // priced activities in itinerary order
}

// Summarize derives the budget view of an itinerary. Categories without
// any priced activity are omitted.
func Summarize(list []models.Activity) Budget {
	var b Budget
	byCategory := make(map[models.Category]*Amount)

	for _, act := range list {
		if act.PriceNOK == 0 && act.PriceEUR == 0 {
			continue
		}
		b.Lines = append(b.Lines, act)
		b.Total.add(act)
		if act.Completed {
			b.Spent.add(act)
		} else {
			b.Pending.add(act)
		}
		amt, ok := byCategory[act.Type]
		if !ok {
			amt = &Amount{}
			byCategory[act.Type] = amt
		}
		amt.add(act)
	}

	for _, cat := range models.Categories {
		if amt, ok := byCategory[cat]; ok {
			b.Categories = append(b.Categories, CategoryTotal{Category: cat, Amount: *amt})
		}
	}
	return b
}
