package scoring

import (
	"regexp"

	"github.com/scoremyfood/backend/internal/domain"
)

// ConfigVersion identifies the threshold table revision carried in results
// and logs, so tuning changes are traceable.
const ConfigVersion = "2024.2"

// Band is a {low, high, magnitude} triple consumed by linearBand: no effect
// at or below Low, full Max at or above High, linear in between.
type Band struct {
	Low  float64
	High float64
	Max  float64
}

// NutrientBands holds the per-100g/ml bands for one product class.
// Sugar..Energy are penalties, Fiber and Protein are bonuses.
type NutrientBands struct {
	Sugar     Band
	FreeSugar Band
	SatFat    Band
	Salt      Band
	Energy    Band
	Fiber     Band
	Protein   Band
}

// TransFatRule is a step penalty: full Penalty at or above Cutoff, else zero.
type TransFatRule struct {
	Cutoff  float64
	Penalty float64
}

// FVNLTier awards Bonus when the fruit/vegetable/nut/legume percentage meets
// Min. Tiers are checked in order; the first (highest) matching tier wins.
type FVNLTier struct {
	Min   float64
	Bonus float64
}

// CategoryRule adjusts nutrient scoring for products whose category or name
// matches Pattern. Fields are merged into a categoryTuning accumulator with
// per-field operators (see resolveCategoryTuning); a zero value means the
// rule does not touch that field.
type CategoryRule struct {
	Pattern *regexp.Regexp

	SugarLowTighten  float64 // max-merged; lowers the sugar band Low, floor 0
	SatFatRelax      float64 // min-merged multiplicative factor (>1 relaxes)
	FiberBonus       float64 // sum-merged flat addition to the fiber band Max
	ProteinBonus     float64 // sum-merged flat addition to the protein band Max
	IgnoreEnergy     bool    // or-merged; drops the energy penalty entirely
	SweetenerZeroTol bool    // or-merged; sweetener flag becomes zero-tolerance
	SweetenerPenalty float64 // max-merged zero-tolerance penalty
}

// TextSignal is one {pattern, magnitude, label} tuple of a signal table,
// evaluated against lower-cased ingredient text.
type TextSignal struct {
	Pattern *regexp.Regexp
	Score   float64
	Label   string
}

// FlagPenalties holds the flat ingredient-flag penalties.
type FlagPenalties struct {
	Sweetener         float64
	Color             float64
	PalmOil           float64
	Caffeine          float64
	BeverageSweetener float64 // multiplier applied to Sweetener for beverages
}

// MicroKey is one fortification signal: a micronutrient with its accepted
// %DV-suffixed nutrition keys.
type MicroKey struct {
	Name    string
	Aliases []string
}

// MicroRules configures the fortification credit.
type MicroRules struct {
	Keys      []MicroKey
	Threshold float64 // minimum %DV for a key to count
	Bonus     float64 // per qualifying key
	Cap       float64
	Baseline  float64
	Scale     float64
}

// Config is the process-wide scoring rule base: weights, banding thresholds
// (solid vs. beverage), category tuning, signal tables, additive penalties
// and micronutrient rules. It is loaded once and never mutated at runtime;
// all regexes are compiled here so per-call scoring does no compilation.
type Config struct {
	Weights domain.Weights

	Solid    NutrientBands
	Beverage NutrientBands
	TransFat TransFatRule
	FVNL     []FVNLTier

	CategoryRules   []CategoryRule
	BeveragePattern *regexp.Regexp

	ProcessingSignals []TextSignal
	ProcessingCap     float64
	NovaPenalties     map[int]float64

	RiskPenalties     map[string]float64
	CodePenalties     map[string]float64
	AdditiveDetectors []TextSignal
	AdditiveCap       float64

	Flags FlagPenalties

	Micro MicroRules

	MaxNotes int
	Version  string
}

// DefaultConfig returns the built-in rule base. Thresholds are heuristic,
// loosely aligned with UK traffic-light cutoffs, and meant to be tuned via
// configuration rather than edited in scorer logic.
func DefaultConfig() *Config {
	return &Config{
		Weights: domain.Weights{
			Nutrient:       0.40,
			Processing:     0.20,
			Additives:      0.20,
			Flags:          0.10,
			Micronutrients: 0.10,
		},

		Solid: NutrientBands{
			Sugar:     Band{Low: 5, High: 22.5, Max: 25},
			FreeSugar: Band{Low: 2.5, High: 15, Max: 10},
			SatFat:    Band{Low: 1.5, High: 5, Max: 20},
			Salt:      Band{Low: 0.3, High: 1.5, Max: 20},
			Energy:    Band{Low: 150, High: 500, Max: 15},
			Fiber:     Band{Low: 3, High: 10, Max: 10},
			Protein:   Band{Low: 5, High: 20, Max: 10},
		},
		Beverage: NutrientBands{
			Sugar:     Band{Low: 2.5, High: 11.25, Max: 30},
			FreeSugar: Band{Low: 1.5, High: 8, Max: 12},
			SatFat:    Band{Low: 0.75, High: 2.5, Max: 20},
			Salt:      Band{Low: 0.3, High: 1.5, Max: 20},
			Energy:    Band{Low: 20, High: 70, Max: 15},
			Fiber:     Band{Low: 1.5, High: 5, Max: 10},
			Protein:   Band{Low: 2.5, High: 10, Max: 10},
		},
		TransFat: TransFatRule{Cutoff: 0.1, Penalty: 25},
		FVNL: []FVNLTier{
			{Min: 80, Bonus: 15},
			{Min: 60, Bonus: 12},
			{Min: 40, Bonus: 9},
			{Min: 20, Bonus: 6},
			{Min: 5, Bonus: 3},
		},

		CategoryRules: []CategoryRule{
			{
				Pattern:          regexp.MustCompile(`infant|baby food|toddler|follow-on`),
				SugarLowTighten:  2.5,
				SweetenerZeroTol: true,
				SweetenerPenalty: 25,
			},
			{
				Pattern:         regexp.MustCompile(`breakfast cereal|cereal|muesli|granola`),
				SugarLowTighten: 2,
				FiberBonus:      2,
			},
			{
				Pattern:     regexp.MustCompile(`cheese|paneer`),
				SatFatRelax: 1.5,
			},
			{
				Pattern:      regexp.MustCompile(`\boil\b|ghee|butter|spread|margarine`),
				SatFatRelax:  1.25,
				IgnoreEnergy: true,
			},
			{
				Pattern:      regexp.MustCompile(`\bnut\b|nuts|seed|legume|pulse|dal`),
				ProteinBonus: 2,
				IgnoreEnergy: true,
			},
			{
				Pattern:      regexp.MustCompile(`yogurt|yoghurt|curd|dahi|kefir`),
				ProteinBonus: 1,
			},
		},
		BeveragePattern: regexp.MustCompile(
			`drink|beverage|juice|soda|cola|\btea\b|coffee|water|milk|lassi|shake`),

		ProcessingSignals: []TextSignal{
			{regexp.MustCompile(`hydrogenated|interesterified`), 10, "Hydrogenated or interesterified fats"},
			{regexp.MustCompile(`palm(olein| oil| fat)?\b`), 4, "Palm oil"},
			{regexp.MustCompile(`corn syrup|glucose syrup|invert syrup|malt syrup|hfcs|maltodextrin`), 6, "Refined sugar syrups"},
			{regexp.MustCompile(`artificial flavou?r|nature[- ]identical|flavou?ring substances`), 3, "Artificial flavouring"},
			{regexp.MustCompile(`\be1[0-9]{2}[a-d]?\b`), 5, "Synthetic colours"},
			{regexp.MustCompile(`aspartame|sucralose|acesulfame|saccharin|neotame|cyclamate`), 5, "High-intensity sweeteners"},
			{regexp.MustCompile(`\bmsg\b|monosodium glutamate|flavou?r enhancer|e62[1-9]|e63[0-9]`), 4, "Flavour enhancers"},
			{regexp.MustCompile(`thickener|stabili[sz]er|emulsifier|\bgum\b|carrageenan`), 2, "Texturizers"},
		},
		ProcessingCap: 25,
		NovaPenalties: map[int]float64{1: 0, 2: 3, 3: 8, 4: 15},

		RiskPenalties: map[string]float64{
			"safe":     0,
			"moderate": 5,
			"avoid":    10,
		},
		CodePenalties: map[string]float64{
			"E102": 8,  // tartrazine
			"E110": 8,  // sunset yellow
			"E129": 8,  // allura red
			"E171": 8,  // titanium dioxide
			"E211": 6,  // sodium benzoate
			"E250": 10, // sodium nitrite
			"E251": 10, // sodium nitrate
			"E320": 7,  // BHA
			"E321": 7,  // BHT
			"E621": 6,  // MSG
			"E951": 8,  // aspartame
		},
		AdditiveDetectors: []TextSignal{
			{regexp.MustCompile(`\bbha\b|\bbht\b|\btbhq\b|butylated`), 6, "Synthetic preservatives"},
			{regexp.MustCompile(`nitrite|nitrate`), 8, "Nitrites or nitrates"},
			{regexp.MustCompile(`aspartame|sucralose|acesulfame|saccharin`), 5, "High-intensity sweeteners"},
			{regexp.MustCompile(`phosphate|phosphoric acid`), 4, "Added phosphates"},
			{regexp.MustCompile(`tartrazine|sunset yellow|allura red|brilliant blue|caramel colou?r`), 5, "Synthetic colours"},
		},
		AdditiveCap: 30,

		Flags: FlagPenalties{
			Sweetener:         5,
			Color:             3,
			PalmOil:           4,
			Caffeine:          3,
			BeverageSweetener: 1.5,
		},

		Micro: MicroRules{
			Keys: []MicroKey{
				{Name: "vitamin C", Aliases: []string{"vitamin-c_%dv", "vitamin_c_%dv", "vitamin-c_dv", "vitamin_c_dv"}},
				{Name: "vitamin D", Aliases: []string{"vitamin-d_%dv", "vitamin_d_%dv", "vitamin-d_dv", "vitamin_d_dv"}},
				{Name: "calcium", Aliases: []string{"calcium_%dv", "calcium_dv"}},
				{Name: "iron", Aliases: []string{"iron_%dv", "iron_dv"}},
			},
			Threshold: 15,
			Bonus:     5,
			Cap:       20,
			Baseline:  50,
			Scale:     2.5,
		},

		MaxNotes: 6,
		Version:  ConfigVersion,
	}
}
