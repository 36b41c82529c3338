package scoring

import (
	"math"

	"github.com/scoremyfood/backend/internal/domain"
)

// Engine is the pure scoring computation: given a ProductRecord and the
// immutable Config it produces a ScoreResult with no I/O and no shared
// mutable state, so concurrent calls need no coordination.
type Engine struct {
	cfg *Config
}

// NewEngine creates a scoring engine. A nil config selects DefaultConfig.
// The config must not be mutated after this call; the engine only ever
// reads it.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Config exposes the live configuration for inspection by tuning tools.
// Debug use only; callers must treat it as read-only.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Score runs the five independent sub-scorers over the record, combines
// them by the configured weights, clamps and rounds the result, and buckets
// the tagged notes into positive/negative explanation lists.
func (e *Engine) Score(p *domain.ProductRecord) domain.ScoreResult {
	if p == nil {
		p = &domain.ProductRecord{}
	}

	beverage := e.cfg.classifyBeverage(p)
	tuning := e.cfg.resolveCategoryTuning(p)

	breakdown := domain.Breakdown{
		Nutrient:       e.scoreNutrients(p, beverage, tuning),
		Processing:     e.scoreProcessing(p),
		Additives:      e.scoreAdditives(p),
		Flags:          e.scoreFlags(p, beverage, tuning),
		Micronutrients: e.scoreMicronutrients(p),
		Weights:        e.cfg.Weights,
	}

	weighted := breakdown.Nutrient.Score*e.cfg.Weights.Nutrient +
		breakdown.Processing.Score*e.cfg.Weights.Processing +
		breakdown.Additives.Score*e.cfg.Weights.Additives +
		breakdown.Flags.Score*e.cfg.Weights.Flags +
		breakdown.Micronutrients.Score*e.cfg.Weights.Micronutrients

	score := int(math.Round(clamp(weighted, 0, 100)))

	positives, negatives := e.collectNotes(&breakdown)

	return domain.ScoreResult{
		Score:     score,
		Grade:     GradeForScore(score),
		Positives: positives,
		Negatives: negatives,
		Breakdown: breakdown,
	}
}

// collectNotes buckets the sub-scorers' notes by their origin polarity tag,
// deduplicating by exact text (order-preserving) and truncating each list to
// the configured maximum so UI payloads stay bounded.
func (e *Engine) collectNotes(b *domain.Breakdown) (positives, negatives []string) {
	all := make([]domain.Note, 0,
		len(b.Nutrient.Notes)+len(b.Processing.Notes)+len(b.Additives.Notes)+
			len(b.Flags.Notes)+len(b.Micronutrients.Notes))
	all = append(all, b.Nutrient.Notes...)
	all = append(all, b.Processing.Notes...)
	all = append(all, b.Additives.Notes...)
	all = append(all, b.Flags.Notes...)
	all = append(all, b.Micronutrients.Notes...)

	positives = []string{}
	negatives = []string{}
	seenPos := map[string]bool{}
	seenNeg := map[string]bool{}
	for _, n := range all {
		switch n.Polarity {
		case domain.NotePositive:
			if !seenPos[n.Text] && len(positives) < e.cfg.MaxNotes {
				seenPos[n.Text] = true
				positives = append(positives, n.Text)
			}
		case domain.NoteNegative:
			if !seenNeg[n.Text] && len(negatives) < e.cfg.MaxNotes {
				seenNeg[n.Text] = true
				negatives = append(negatives, n.Text)
			}
		}
	}
	return positives, negatives
}

// GradeForScore maps an integer score to its letter grade. The bands are
// fixed and total: every score in [0,100] maps to exactly one grade.
func GradeForScore(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 65:
		return "B"
	case score >= 50:
		return "C"
	case score >= 35:
		return "D"
	default:
		return "E"
	}
}

// EnsureScored merges a score block into the analyzed product unless it
// already carries one. Idempotent: a second call on an already-scored record
// returns it unchanged, with no re-computation.
func (e *Engine) EnsureScored(a *domain.AnalyzedProduct, record *domain.ProductRecord) *domain.AnalyzedProduct {
	if a == nil || a.Score != nil {
		return a
	}
	result := e.Score(record)
	score := result.Score
	a.Score = &score
	a.Grade = result.Grade
	a.Positives = result.Positives
	a.Negatives = result.Negatives
	breakdown := result.Breakdown
	a.Breakdown = &breakdown
	return a
}

// IsBeverage reports whether the record scores against beverage thresholds.
// Exposed for the analysis layer, which surfaces the classification.
func (e *Engine) IsBeverage(p *domain.ProductRecord) bool {
	return e.cfg.classifyBeverage(p)
}

// TrafficLights classifies the headline nutrients into low/medium/high
// using the band bounds ("unknown" when the reading is absent).
func (e *Engine) TrafficLights(p *domain.ProductRecord) domain.TrafficLights {
	bands := e.cfg.Solid
	if e.cfg.classifyBeverage(p) {
		bands = e.cfg.Beverage
	}

	light := func(v float64, ok bool, b Band) string {
		switch {
		case !ok:
			return "unknown"
		case v <= b.Low:
			return "low"
		case v <= b.High:
			return "medium"
		default:
			return "high"
		}
	}

	sugar, sugarOK := readNutrient(p.Nutrition, sugarAliases)
	satFat, satFatOK := readNutrient(p.Nutrition, satFatAliases)
	salt, saltOK := saltFromSodium(p.Nutrition)

	return domain.TrafficLights{
		Sugars: light(sugar, sugarOK, bands.Sugar),
		SatFat: light(satFat, satFatOK, bands.SatFat),
		Salt:   light(salt, saltOK, bands.Salt),
	}
}
