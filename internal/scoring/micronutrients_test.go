package scoring

import (
	"testing"

	"github.com/scoremyfood/backend/internal/domain"
)

func TestScoreMicronutrients(t *testing.T) {
	e := newTestEngine()

	t.Run("no fortification data is neutral", func(t *testing.T) {
		sub := e.scoreMicronutrients(&domain.ProductRecord{})
		if sub.Score != 50 {
			t.Errorf("Score = %v, want baseline 50", sub.Score)
		}
		if len(sub.Notes) != 0 {
			t.Errorf("Notes = %v, want none", sub.Notes)
		}
	})

	t.Run("qualifying keys add bonuses", func(t *testing.T) {
		sub := e.scoreMicronutrients(&domain.ProductRecord{
			Nutrition: map[string]any{
				"vitamin-c_%dv": 30.0,
				"iron_dv":       20.0,
				"calcium_%dv":   10.0, // below the 15 %DV threshold
			},
		})
		if sub.Detail["bonus_total"] != 10 {
			t.Errorf("bonus_total = %v, want 10", sub.Detail["bonus_total"])
		}
		if sub.Score != 75 {
			t.Errorf("Score = %v, want 75 (50 + 10*2.5)", sub.Score)
		}
		if len(sub.Notes) != 2 {
			t.Fatalf("Notes = %v, want 2", sub.Notes)
		}
		for _, n := range sub.Notes {
			if n.Polarity != domain.NotePositive {
				t.Errorf("note %q polarity = %s, want positive", n.Text, n.Polarity)
			}
		}
	})

	t.Run("bonus is capped", func(t *testing.T) {
		sub := e.scoreMicronutrients(&domain.ProductRecord{
			Nutrition: map[string]any{
				"vitamin-c_%dv": 100.0,
				"vitamin-d_%dv": 100.0,
				"calcium_%dv":   100.0,
				"iron_%dv":      100.0,
			},
		})
		if sub.Detail["bonus_total"] != 20 {
			t.Errorf("bonus_total = %v, want capped at 20", sub.Detail["bonus_total"])
		}
		if sub.Score != 100 {
			t.Errorf("Score = %v, want 100", sub.Score)
		}
	})
}
