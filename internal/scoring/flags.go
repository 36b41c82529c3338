package scoring

import (
	"regexp"
	"strings"

	"github.com/scoremyfood/backend/internal/domain"
)

// flagExpansion maps the summed flag penalties onto the 0-100 sub-score span.
const flagExpansion = 4.0

var (
	sweetenerFlagRe = regexp.MustCompile(`aspartame|sucralose|acesulfame|saccharin|neotame|cyclamate|artificial sweetener`)
	colorFlagRe     = regexp.MustCompile(`\be1[0-9]{2}[a-d]?\b|tartrazine|sunset yellow|allura red|brilliant blue|artificial colou?r`)
	palmOilFlagRe   = regexp.MustCompile(`palm(olein| oil| fat| kernel)?\b`)
	caffeineFlagRe  = regexp.MustCompile(`caffeine|guarana|\btaurine\b`)
)

// scoreFlags applies independent flat penalties for flagged ingredient
// classes. Sweetener penalties are scaled up for beverages, and replaced
// entirely by the category zero-tolerance penalty when a matching rule
// (infant food) sets that flag. Caffeine is only penalized in beverages.
func (e *Engine) scoreFlags(p *domain.ProductRecord, beverage bool, tuning categoryTuning) domain.SubScore {
	detail := map[string]float64{}
	var notes []domain.Note

	text := strings.ToLower(p.IngredientsText)
	penalty := 0.0

	if text != "" {
		if sweetenerFlagRe.MatchString(text) {
			pen := e.cfg.Flags.Sweetener
			if beverage {
				pen *= e.cfg.Flags.BeverageSweetener
			}
			if tuning.SweetenerZeroTol {
				pen = tuning.SweetenerPenalty
				notes = append(notes, domain.Note{Text: "Sweetener in zero-tolerance category", Polarity: domain.NoteNegative})
			} else {
				notes = append(notes, domain.Note{Text: "Artificial sweeteners", Polarity: domain.NoteNegative})
			}
			penalty += pen
			detail["penalty_sweetener"] = pen
		}
		if colorFlagRe.MatchString(text) {
			penalty += e.cfg.Flags.Color
			detail["penalty_color"] = e.cfg.Flags.Color
			notes = append(notes, domain.Note{Text: "Synthetic colours", Polarity: domain.NoteNegative})
		}
		if palmOilFlagRe.MatchString(text) {
			penalty += e.cfg.Flags.PalmOil
			detail["penalty_palm_oil"] = e.cfg.Flags.PalmOil
			notes = append(notes, domain.Note{Text: "Palm oil", Polarity: domain.NoteNegative})
		}
		if beverage && caffeineFlagRe.MatchString(text) {
			penalty += e.cfg.Flags.Caffeine
			detail["penalty_caffeine"] = e.cfg.Flags.Caffeine
			notes = append(notes, domain.Note{Text: "Caffeinated beverage", Polarity: domain.NoteNegative})
		}
	}
	detail["penalty_total"] = penalty

	return domain.SubScore{
		Score:  clamp(100-penalty*flagExpansion, 0, 100),
		Detail: detail,
		Notes:  notes,
	}
}
