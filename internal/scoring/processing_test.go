package scoring

import (
	"testing"

	"github.com/scoremyfood/backend/internal/domain"
)

func TestScoreProcessing_NovaClassification(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		nova      int
		wantScore float64
		wantNote  bool
	}{
		{"unprocessed", 1, 100, false},
		{"processed ingredients", 2, 91, false},
		{"processed", 3, 76, true},
		{"ultra-processed", 4, 55, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := e.scoreProcessing(&domain.ProductRecord{NovaGroup: tt.nova})
			if sub.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", sub.Score, tt.wantScore)
			}
			hasNote := len(sub.Notes) > 0
			if hasNote != tt.wantNote {
				t.Errorf("note emitted = %v, want %v (notes: %v)", hasNote, tt.wantNote, sub.Notes)
			}
		})
	}
}

func TestScoreProcessing_TextSignals(t *testing.T) {
	e := newTestEngine()

	sub := e.scoreProcessing(&domain.ProductRecord{
		IngredientsText: "Wheat flour, partially hydrogenated palm oil, corn syrup",
	})

	// hydrogenated (10) + palm oil (4) + corn syrup (6) = 20
	if sub.Detail["penalty_total"] != 20 {
		t.Errorf("penalty_total = %v, want 20", sub.Detail["penalty_total"])
	}
	if sub.Score != 40 {
		t.Errorf("Score = %v, want 40", sub.Score)
	}

	labels := map[string]bool{}
	for _, n := range sub.Notes {
		if n.Polarity != domain.NoteNegative {
			t.Errorf("note %q polarity = %s, want negative", n.Text, n.Polarity)
		}
		labels[n.Text] = true
	}
	for _, want := range []string{
		"Hydrogenated or interesterified fats",
		"Palm oil",
		"Refined sugar syrups",
	} {
		if !labels[want] {
			t.Errorf("missing note %q in %v", want, sub.Notes)
		}
	}
}

func TestScoreProcessing_RepeatedMatchesAccumulate(t *testing.T) {
	e := newTestEngine()

	once := e.scoreProcessing(&domain.ProductRecord{
		IngredientsText: "water, corn syrup",
	})
	twice := e.scoreProcessing(&domain.ProductRecord{
		IngredientsText: "water, corn syrup, glucose syrup",
	})

	if twice.Detail["penalty_total"] != 2*once.Detail["penalty_total"] {
		t.Errorf("two syrup mentions penalty = %v, want double %v",
			twice.Detail["penalty_total"], once.Detail["penalty_total"])
	}
	// The label is reported once regardless.
	if len(twice.Notes) != 1 {
		t.Errorf("Notes = %v, want one deduplicated label", twice.Notes)
	}
}

func TestScoreProcessing_SyntheticColorRange(t *testing.T) {
	e := newTestEngine()

	sub := e.scoreProcessing(&domain.ProductRecord{
		IngredientsText: "sugar, colour (e129), flavouring",
	})
	found := false
	for _, n := range sub.Notes {
		if n.Text == "Synthetic colours" {
			found = true
		}
	}
	if !found {
		t.Errorf("e129 should match the E100-E199 colour range, notes: %v", sub.Notes)
	}
}

func TestScoreProcessing_PenaltyCapped(t *testing.T) {
	e := newTestEngine()

	sub := e.scoreProcessing(&domain.ProductRecord{
		NovaGroup: 4,
		IngredientsText: "hydrogenated oil, hydrogenated fat, corn syrup, glucose syrup, " +
			"aspartame, msg, e102, emulsifier, stabilizer",
	})
	if sub.Detail["penalty_total"] != 25 {
		t.Errorf("penalty_total = %v, want capped at 25", sub.Detail["penalty_total"])
	}
	if sub.Score != 25 {
		t.Errorf("Score = %v, want 25 (100 - 25*3)", sub.Score)
	}
}

func TestScoreProcessing_EmptyInput(t *testing.T) {
	e := newTestEngine()

	sub := e.scoreProcessing(&domain.ProductRecord{})
	if sub.Score != 100 || len(sub.Notes) != 0 {
		t.Errorf("Score = %v notes = %v, want 100 and none", sub.Score, sub.Notes)
	}
}
