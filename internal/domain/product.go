package domain

// ProductRecord is the loosely-structured product payload the scoring engine
// consumes. It is owned by the supplier (OpenFoodFacts lookup or text
// analysis) and read-only to the engine: fields may be absent, nutrition
// values may be non-numeric, and the engine degrades rather than fails.
type ProductRecord struct {
	Barcode         string         `json:"barcode,omitempty"`
	Name            string         `json:"name"`
	Brand           string         `json:"brand,omitempty"`
	Categories      string         `json:"categories,omitempty"`
	Quantity        string         `json:"quantity,omitempty"`
	IngredientsText string         `json:"ingredients_text,omitempty"`
	Additives       []Additive     `json:"additives,omitempty"`
	Nutrition       map[string]any `json:"nutrition,omitempty"`

	// NovaGroup is an externally supplied 1-4 processing classification.
	// It may also appear inside Nutrition under "nova_group" / "nova-group".
	NovaGroup int `json:"nova_group,omitempty"`
}

// Additive is one structured additive entry. Code is an E-number in any
// textual form ("e250", "E 250", "INS 150d"); Risk is one of
// "safe", "moderate", "avoid" (case-insensitive).
type Additive struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Risk string `json:"risk,omitempty"`
}

// NotePolarity classifies an explanation note at its origin, so the
// aggregator can bucket notes without re-scanning their rendered text.
type NotePolarity string

const (
	NotePositive NotePolarity = "positive"
	NoteNegative NotePolarity = "negative"
	NoteNeutral  NotePolarity = "neutral"
)

// Note is a human-readable explanation emitted by a sub-scorer.
type Note struct {
	Text     string       `json:"text"`
	Polarity NotePolarity `json:"polarity"`
}

// SubScore is one of the five independent 0-100 component scores, with the
// detail that produced it retained for audit and tuning.
type SubScore struct {
	Score  float64            `json:"score"`
	Detail map[string]float64 `json:"detail,omitempty"`
	Notes  []Note             `json:"notes,omitempty"`
}

// Weights is the fixed weight vector applied by the aggregator.
type Weights struct {
	Nutrient       float64 `json:"nutrient"`
	Processing     float64 `json:"processing"`
	Additives      float64 `json:"additives"`
	Flags          float64 `json:"flags"`
	Micronutrients float64 `json:"micronutrients"`
}

// Breakdown carries the five named sub-scores and the weights used.
// It is never mutated after construction.
type Breakdown struct {
	Nutrient       SubScore `json:"nutrient"`
	Processing     SubScore `json:"processing"`
	Additives      SubScore `json:"additives"`
	Flags          SubScore `json:"flags"`
	Micronutrients SubScore `json:"micronutrients"`
	Weights        Weights  `json:"weights"`
}

// ScoreResult is the engine's output: an integer score in [0,100], a letter
// grade, deduplicated explanation lists capped at a fixed length, and the
// full breakdown.
type ScoreResult struct {
	Score     int       `json:"score"`
	Grade     string    `json:"grade"`
	Positives []string  `json:"positives"`
	Negatives []string  `json:"negatives"`
	Breakdown Breakdown `json:"breakdown"`
}

// Ingredient is one parsed item from the ingredient text, with the declared
// percentage when the label states one.
type Ingredient struct {
	Name    string   `json:"name"`
	Percent *float64 `json:"percent,omitempty"`
}

// TrafficLights holds the UK-style low/medium/high classification for the
// three headline nutrients ("unknown" when the reading is absent).
type TrafficLights struct {
	Sugars string `json:"sugars"`
	SatFat string `json:"sat_fat"`
	Salt   string `json:"salt"`
}

// AnalyzedProduct is the product-like record returned to the presentation
// layer: the input record enriched with parsing output and the score block.
// A nil Score means the record has not been scored yet; EnsureScored treats
// a non-nil Score as final and passes the record through unchanged.
type AnalyzedProduct struct {
	Barcode         string        `json:"barcode"`
	Name            string        `json:"name"`
	Brand           string        `json:"brand,omitempty"`
	IsBeverage      bool          `json:"isBeverage"`
	IngredientsText string        `json:"ingredients_text,omitempty"`
	Ingredients     []Ingredient  `json:"structured_ingredients,omitempty"`
	Additives       []Additive    `json:"additives,omitempty"`
	Allergens       []string      `json:"allergens,omitempty"`
	Traffic         TrafficLights `json:"traffic"`
	Source          string        `json:"source"`

	Score     *int      `json:"score,omitempty"`
	Grade     string    `json:"grade,omitempty"`
	Positives []string  `json:"positives,omitempty"`
	Negatives []string  `json:"negatives,omitempty"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}
