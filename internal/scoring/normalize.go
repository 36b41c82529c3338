package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/scoremyfood/backend/internal/domain"
)

// Accepted nutrition-map aliases per nutrient, checked in order. Values are
// per 100 g/ml; suppliers differ on key spelling (OpenFoodFacts uses
// dash-separated *_100g keys, the label extractor uses *_g/_mg).
var (
	sugarAliases     = []string{"sugars_100g", "sugar_100g", "sugars", "sugar_g"}
	freeSugarAliases = []string{"free-sugars_100g", "free_sugars_100g", "free_sugar_g"}
	satFatAliases    = []string{"saturated-fat_100g", "saturated_fat_100g", "sat_fat_g", "saturated_fat"}
	transFatAliases  = []string{"trans-fat_100g", "trans_fat_100g", "trans_fat_g", "trans_fat"}
	sodiumAliases    = []string{"sodium_mg", "sodium-mg_100g", "sodium"}
	saltAliases      = []string{"salt_100g", "salt_g", "salt"}
	kcalAliases      = []string{"energy-kcal_100g", "energy_kcal", "kcal", "energy_kcal_100g"}
	kjAliases        = []string{"energy-kj_100g", "energy_kj", "energy_100g", "kj"}
	fiberAliases     = []string{"fiber_100g", "fibre_100g", "fiber_g", "fiber"}
	proteinAliases   = []string{"proteins_100g", "protein_100g", "protein_g", "protein"}
	fvnlAliases      = []string{
		"fruits-vegetables-nuts-estimate-from-ingredients_100g",
		"fruits-vegetables-nuts_100g",
		"fruit_pct", "fvnl_pct",
	}
	novaAliases = []string{"nova_group", "nova-group"}
)

// kJPerKcal converts kilojoules to kilocalories.
const kJPerKcal = 4.184

// sodiumToSaltFactor converts sodium (g) to salt equivalent (g).
const sodiumToSaltFactor = 2.5

var additiveCodeRe = regexp.MustCompile(`(\d{3,4})`)

// coerceFloat converts the loosely-typed nutrition values (float64, int,
// numeric string) to a float64. Non-numeric data is reported absent rather
// than erroring; the engine always prefers a best-effort score.
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(x, ",", ".")), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// readNutrient returns the first present numeric value among the aliases.
// Absent or non-numeric entries silently fall through; ok is false when no
// alias yields a number.
func readNutrient(nutrition map[string]any, aliases []string) (float64, bool) {
	if nutrition == nil {
		return 0, false
	}
	for _, key := range aliases {
		if v, present := nutrition[key]; present {
			if f, ok := coerceFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// saltFromSodium derives the salt reading in grams: sodium (mg) converted at
// 2.5 g salt per g sodium when present, else an explicit salt field, else
// absent.
func saltFromSodium(nutrition map[string]any) (float64, bool) {
	if sodiumMg, ok := readNutrient(nutrition, sodiumAliases); ok {
		return sodiumMg * sodiumToSaltFactor / 1000.0, true
	}
	return readNutrient(nutrition, saltAliases)
}

// energyKcal reads energy in kcal, converting from kJ when only kJ is given.
func energyKcal(nutrition map[string]any) (float64, bool) {
	if kcal, ok := readNutrient(nutrition, kcalAliases); ok {
		return kcal, true
	}
	if kj, ok := readNutrient(nutrition, kjAliases); ok {
		return kj / kJPerKcal, true
	}
	return 0, false
}

// classifyBeverage reports whether the record should be scored against the
// beverage threshold set, based on a keyword scan of name and categories.
func (c *Config) classifyBeverage(p *domain.ProductRecord) bool {
	blob := strings.ToLower(p.Name + " " + p.Categories)
	return c.BeveragePattern.MatchString(blob)
}

// novaGroup extracts the externally supplied processing classification,
// checking the top-level field first and the nutrition map second.
// Returns 0 when absent or outside 1-4.
func novaGroup(p *domain.ProductRecord) int {
	if p.NovaGroup >= 1 && p.NovaGroup <= 4 {
		return p.NovaGroup
	}
	if v, ok := readNutrient(p.Nutrition, novaAliases); ok {
		n := int(v)
		if n >= 1 && n <= 4 {
			return n
		}
	}
	return 0
}

// categoryTuning is the merged adjustment produced by resolveCategoryTuning.
// SatFatRelax is 1.0 (no relaxation) when no rule set it.
type categoryTuning struct {
	SugarLowTighten  float64
	SatFatRelax      float64
	FiberBonus       float64
	ProteinBonus     float64
	IgnoreEnergy     bool
	SweetenerZeroTol bool
	SweetenerPenalty float64
}

// resolveCategoryTuning scans the rule table in order and merges every
// matching rule into one accumulator. Merge operators are per field:
// max for tightening/bonus magnitudes that should only increase, min for
// relaxation factors so multiple relaxing rules do not over-relax, sum for
// additive band bonuses, and boolean or for toggles. Later matches extend
// earlier ones; they never overwrite an accumulated non-default value.
func (c *Config) resolveCategoryTuning(p *domain.ProductRecord) categoryTuning {
	tuning := categoryTuning{SatFatRelax: 1.0}
	relaxSet := false

	blob := strings.ToLower(p.Name + " " + p.Categories)
	for _, rule := range c.CategoryRules {
		if !rule.Pattern.MatchString(blob) {
			continue
		}
		if rule.SugarLowTighten > tuning.SugarLowTighten {
			tuning.SugarLowTighten = rule.SugarLowTighten
		}
		if rule.SatFatRelax > 0 {
			if !relaxSet || rule.SatFatRelax < tuning.SatFatRelax {
				tuning.SatFatRelax = rule.SatFatRelax
			}
			relaxSet = true
		}
		tuning.FiberBonus += rule.FiberBonus
		tuning.ProteinBonus += rule.ProteinBonus
		tuning.IgnoreEnergy = tuning.IgnoreEnergy || rule.IgnoreEnergy
		tuning.SweetenerZeroTol = tuning.SweetenerZeroTol || rule.SweetenerZeroTol
		if rule.SweetenerPenalty > tuning.SweetenerPenalty {
			tuning.SweetenerPenalty = rule.SweetenerPenalty
		}
	}
	return tuning
}

// normalizeAdditiveCode canonicalizes an additive identifier ("e250",
// "E 250", "INS150d", "250") to the form E<digits>. Returns "" when no
// 3-4 digit code can be extracted.
func normalizeAdditiveCode(code string) string {
	m := additiveCodeRe.FindStringSubmatch(code)
	if m == nil {
		return ""
	}
	return "E" + m[1]
}

// linearBand is the single banding primitive: outLow at or below lowBound,
// outHigh at or above highBound, linear interpolation between.
func linearBand(x, lowBound, highBound, outLow, outHigh float64) float64 {
	if x <= lowBound {
		return outLow
	}
	if x >= highBound {
		return outHigh
	}
	return outLow + (outHigh-outLow)*(x-lowBound)/(highBound-lowBound)
}

// bandPenalty applies a Band as a 0..Max ramp.
func bandPenalty(x float64, b Band) float64 {
	return linearBand(x, b.Low, b.High, 0, b.Max)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
