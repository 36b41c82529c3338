package scoring

import (
	"strings"

	"github.com/scoremyfood/backend/internal/domain"
)

// additiveExpansion maps the capped penalty range onto the full 0-100
// sub-score span.
const additiveExpansion = 2.5

// maxAdditiveSummary bounds how many seen items the summary note lists.
const maxAdditiveSummary = 6

// scoreAdditives aggregates risk from the structured additive list and from
// free-text mentions the list did not capture. For each structured entry the
// penalty is max(riskTierPenalty, codeOverridePenalty): a code override can
// raise but never lower the tier penalty. Text detectors contribute
// independently, so an additive present both structurally and in the text is
// counted twice; that double count is deliberate, favouring sensitivity over
// precision.
func (e *Engine) scoreAdditives(p *domain.ProductRecord) domain.SubScore {
	detail := map[string]float64{}
	var notes []domain.Note

	penalty := 0.0
	var seenItems []string
	seenSet := map[string]bool{}

	for _, a := range p.Additives {
		tierPen := e.cfg.RiskPenalties[strings.ToLower(strings.TrimSpace(a.Risk))]
		codePen := 0.0
		code := normalizeAdditiveCode(a.Code)
		if code != "" {
			codePen = e.cfg.CodePenalties[code]
		}
		pen := tierPen
		if codePen > pen {
			pen = codePen
		}
		if pen <= 0 {
			continue
		}
		penalty += pen

		item := code
		if item == "" {
			item = a.Name
		}
		if item == "" {
			item = "additive"
		}
		if !seenSet[item] {
			seenSet[item] = true
			seenItems = append(seenItems, item)
		}
	}
	detail["penalty_structured"] = penalty

	textPenalty := 0.0
	text := strings.ToLower(p.IngredientsText)
	if text != "" {
		for _, det := range e.cfg.AdditiveDetectors {
			if !det.Pattern.MatchString(text) {
				continue
			}
			textPenalty += det.Score
			if !seenSet[det.Label] {
				seenSet[det.Label] = true
				seenItems = append(seenItems, det.Label)
			}
		}
	}
	detail["penalty_text"] = textPenalty

	penalty += textPenalty
	if penalty > e.cfg.AdditiveCap {
		penalty = e.cfg.AdditiveCap
	}
	detail["penalty_total"] = penalty

	if len(seenItems) > 0 {
		listed := seenItems
		suffix := ""
		if len(listed) > maxAdditiveSummary {
			listed = listed[:maxAdditiveSummary]
			suffix = ", …"
		}
		notes = append(notes, domain.Note{
			Text:     "Contains additives: " + strings.Join(listed, ", ") + suffix,
			Polarity: domain.NoteNegative,
		})
	}

	return domain.SubScore{
		Score:  clamp(100-penalty*additiveExpansion, 0, 100),
		Detail: detail,
		Notes:  notes,
	}
}
