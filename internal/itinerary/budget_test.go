package itinerary

import (
	"testing"

	"github.com/julianstephens/flamday/internal/models"
)

func TestSummarize(t *testing.T) {
	b := Summarize(Default())

	if b.Total != (Amount{NOK: 2760, EUR: 239}) {
		t.Errorf("Total = %+v, want 2760 NOK / 239 EUR", b.Total)
	}
	if b.Spent != (Amount{}) {
		t.Errorf("Spent = %+v, want zero", b.Spent)
	}
	if b.Pending != b.Total {
		t.Errorf("Pending = %+v, want total", b.Pending)
	}
	if len(b.Lines) != 4 {
		t.Errorf("expected 4 priced lines, got %d", len(b.Lines))
	}

	want := []CategoryTotal{
		{Category: models.CategoryTransport, Amount: Amount{NOK: 750, EUR: 65}},
		{Category: models.CategoryFood, Amount: Amount{NOK: 500, EUR: 43}},
		{Category: models.CategorySightseeing, Amount: Amount{NOK: 1510, EUR: 131}},
	}
	if len(b.Categories) != len(want) {
		t.Fatalf("got %d categories, want %d", len(b.Categories), len(want))
	}
	for i := range want {
		if b.Categories[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, b.Categories[i], want[i])
		}
	}
}

func TestSummarizeSpent(t *testing.T) {
	b := Summarize(Merge(Default(), map[string]bool{"2": true, "3": true, "6": true}))

	if b.Spent != (Amount{NOK: 1250, EUR: 108}) {
		t.Errorf("Spent = %+v, want 1250 NOK / 108 EUR", b.Spent)
	}
	if b.Pending != (Amount{NOK: 1510, EUR: 131}) {
		t.Errorf("Pending = %+v, want 1510 NOK / 131 EUR", b.Pending)
	}
}
