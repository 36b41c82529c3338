package scoring

import (
	"fmt"
	"strings"

	"github.com/scoremyfood/backend/internal/domain"
)

// processingExpansion maps the capped penalty range onto the full 0-100
// sub-score span.
const processingExpansion = 3.0

// scoreProcessing estimates the degree of industrial processing from two
// signals: an externally supplied NOVA-like classification (1-4) and an
// ordered scan of the ingredient text against the processing signal table.
// Repeated distinct matches all contribute penalty; labels are deduplicated
// before reporting. The total penalty is capped, then expanded onto 0-100.
func (e *Engine) scoreProcessing(p *domain.ProductRecord) domain.SubScore {
	detail := map[string]float64{}
	var notes []domain.Note

	penalty := 0.0
	if nova := novaGroup(p); nova > 0 {
		if pen, ok := e.cfg.NovaPenalties[nova]; ok {
			penalty += pen
			detail["nova_group"] = float64(nova)
			detail["penalty_nova"] = pen
		}
		if nova >= 3 {
			notes = append(notes, domain.Note{
				Text:     fmt.Sprintf("Processed food (NOVA %d)", nova),
				Polarity: domain.NoteNegative,
			})
		}
	}

	text := strings.ToLower(p.IngredientsText)
	if text != "" {
		seen := map[string]bool{}
		for _, sig := range e.cfg.ProcessingSignals {
			matches := sig.Pattern.FindAllString(text, -1)
			if len(matches) == 0 {
				continue
			}
			// Every occurrence contributes penalty; the label is reported once.
			penalty += sig.Score * float64(len(matches))
			if !seen[sig.Label] {
				seen[sig.Label] = true
				notes = append(notes, domain.Note{Text: sig.Label, Polarity: domain.NoteNegative})
			}
		}
	}

	if penalty > e.cfg.ProcessingCap {
		penalty = e.cfg.ProcessingCap
	}
	detail["penalty_total"] = penalty

	return domain.SubScore{
		Score:  clamp(100-penalty*processingExpansion, 0, 100),
		Detail: detail,
		Notes:  notes,
	}
}
