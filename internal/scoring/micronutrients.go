package scoring

import (
	"github.com/scoremyfood/backend/internal/domain"
)

// scoreMicronutrients credits fortification: each configured micronutrient
// whose %DV reading meets the threshold adds a fixed bonus, capped. Unlike
// the other sub-scores this one is anchored at a non-zero baseline, because
// absence of fortification data is neutral, not penalized.
func (e *Engine) scoreMicronutrients(p *domain.ProductRecord) domain.SubScore {
	detail := map[string]float64{}
	var notes []domain.Note

	bonus := 0.0
	for _, key := range e.cfg.Micro.Keys {
		dv, ok := readNutrient(p.Nutrition, key.Aliases)
		if !ok || dv < e.cfg.Micro.Threshold {
			continue
		}
		bonus += e.cfg.Micro.Bonus
		detail["dv_"+key.Name] = dv
		notes = append(notes, domain.Note{
			Text:     "Fortified with " + key.Name,
			Polarity: domain.NotePositive,
		})
	}
	if bonus > e.cfg.Micro.Cap {
		bonus = e.cfg.Micro.Cap
	}
	detail["bonus_total"] = bonus

	return domain.SubScore{
		Score:  clamp(e.cfg.Micro.Baseline+bonus*e.cfg.Micro.Scale, 0, 100),
		Detail: detail,
		Notes:  notes,
	}
}
