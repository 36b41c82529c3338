package scoring

import (
	"math"
	"testing"

	"github.com/scoremyfood/backend/internal/domain"
)

func TestReadNutrient(t *testing.T) {
	nutrition := map[string]any{
		"sugars_100g": 12.5,
		"protein_g":   "6,2",
		"fiber_100g":  "not a number",
		"fibre_100g":  3,
	}

	t.Run("reads first present alias", func(t *testing.T) {
		v, ok := readNutrient(nutrition, sugarAliases)
		if !ok || v != 12.5 {
			t.Errorf("readNutrient = %v, %v, want 12.5, true", v, ok)
		}
	})

	t.Run("coerces numeric strings with comma decimal", func(t *testing.T) {
		v, ok := readNutrient(nutrition, proteinAliases)
		if !ok || v != 6.2 {
			t.Errorf("readNutrient = %v, %v, want 6.2, true", v, ok)
		}
	})

	t.Run("falls past non-numeric entries to later aliases", func(t *testing.T) {
		v, ok := readNutrient(nutrition, fiberAliases)
		if !ok || v != 3 {
			t.Errorf("readNutrient = %v, %v, want 3, true", v, ok)
		}
	})

	t.Run("absent key reports not ok", func(t *testing.T) {
		if _, ok := readNutrient(nutrition, saltAliases); ok {
			t.Error("readNutrient ok = true, want false for absent nutrient")
		}
	})

	t.Run("nil map reports not ok", func(t *testing.T) {
		if _, ok := readNutrient(nil, sugarAliases); ok {
			t.Error("readNutrient ok = true, want false for nil map")
		}
	})
}

func TestSaltFromSodium(t *testing.T) {
	t.Run("converts sodium mg to salt grams", func(t *testing.T) {
		salt, ok := saltFromSodium(map[string]any{"sodium_mg": 600.0})
		if !ok || salt != 1.5 {
			t.Errorf("saltFromSodium = %v, %v, want 1.5, true", salt, ok)
		}
	})

	t.Run("sodium takes precedence over explicit salt", func(t *testing.T) {
		salt, _ := saltFromSodium(map[string]any{"sodium_mg": 400.0, "salt_100g": 9.0})
		if salt != 1.0 {
			t.Errorf("saltFromSodium = %v, want 1.0 (from sodium)", salt)
		}
	})

	t.Run("falls back to explicit salt field", func(t *testing.T) {
		salt, ok := saltFromSodium(map[string]any{"salt_100g": 0.8})
		if !ok || salt != 0.8 {
			t.Errorf("saltFromSodium = %v, %v, want 0.8, true", salt, ok)
		}
	})

	t.Run("absent reports not ok", func(t *testing.T) {
		if _, ok := saltFromSodium(map[string]any{}); ok {
			t.Error("saltFromSodium ok = true, want false")
		}
	})
}

func TestEnergyKcal(t *testing.T) {
	t.Run("prefers kcal field", func(t *testing.T) {
		v, ok := energyKcal(map[string]any{"energy-kcal_100g": 250.0, "energy-kj_100g": 9999.0})
		if !ok || v != 250.0 {
			t.Errorf("energyKcal = %v, %v, want 250, true", v, ok)
		}
	})

	t.Run("converts from kJ when only kJ present", func(t *testing.T) {
		v, ok := energyKcal(map[string]any{"energy-kj_100g": 418.4})
		if !ok || math.Abs(v-100.0) > 1e-9 {
			t.Errorf("energyKcal = %v, %v, want 100, true", v, ok)
		}
	})
}

func TestNormalizeAdditiveCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"e250", "E250"},
		{"E 250", "E250"},
		{"E-621", "E621"},
		{"INS150", "E150"},
		{"ins 1520", "E1520"},
		{"250", "E250"},
		{"monosodium glutamate", ""},
		{"", ""},
		{"E1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeAdditiveCode(tt.in); got != tt.want {
				t.Errorf("normalizeAdditiveCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyBeverage(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		product    domain.ProductRecord
		isBeverage bool
	}{
		{"cola by name", domain.ProductRecord{Name: "Fizzy Cola Zero"}, true},
		{"juice by category", domain.ProductRecord{Name: "Tropical blend", Categories: "Fruit juices"}, true},
		{"lassi", domain.ProductRecord{Name: "Sweet Lassi"}, true},
		{"plain biscuit", domain.ProductRecord{Name: "Digestive biscuits", Categories: "Biscuits"}, false},
		{"empty record", domain.ProductRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.classifyBeverage(&tt.product); got != tt.isBeverage {
				t.Errorf("classifyBeverage = %v, want %v", got, tt.isBeverage)
			}
		})
	}
}

func TestResolveCategoryTuning(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("no matching rule returns neutral tuning", func(t *testing.T) {
		tuning := cfg.resolveCategoryTuning(&domain.ProductRecord{Name: "Plain crackers"})
		if tuning.SatFatRelax != 1.0 || tuning.SugarLowTighten != 0 || tuning.IgnoreEnergy {
			t.Errorf("tuning = %+v, want neutral", tuning)
		}
	})

	t.Run("infant rule sets zero tolerance", func(t *testing.T) {
		tuning := cfg.resolveCategoryTuning(&domain.ProductRecord{Categories: "Baby food purees"})
		if !tuning.SweetenerZeroTol {
			t.Error("SweetenerZeroTol = false, want true")
		}
		if tuning.SweetenerPenalty != 25 {
			t.Errorf("SweetenerPenalty = %v, want 25", tuning.SweetenerPenalty)
		}
		if tuning.SugarLowTighten != 2.5 {
			t.Errorf("SugarLowTighten = %v, want 2.5", tuning.SugarLowTighten)
		}
	})

	t.Run("multiple relaxing rules merge by min", func(t *testing.T) {
		// Matches both the cheese rule (1.5) and the spread rule (1.25);
		// the smaller factor wins so rules do not over-relax.
		tuning := cfg.resolveCategoryTuning(&domain.ProductRecord{Categories: "Cheese spread"})
		if tuning.SatFatRelax != 1.25 {
			t.Errorf("SatFatRelax = %v, want 1.25", tuning.SatFatRelax)
		}
		if !tuning.IgnoreEnergy {
			t.Error("IgnoreEnergy = false, want true")
		}
	})

	t.Run("bonus fields accumulate by sum", func(t *testing.T) {
		tuning := cfg.resolveCategoryTuning(&domain.ProductRecord{Categories: "Nut butters, yogurt snacks"})
		if tuning.ProteinBonus != 3 {
			t.Errorf("ProteinBonus = %v, want 3 (2 from nuts + 1 from yogurt)", tuning.ProteinBonus)
		}
	})
}

func TestNovaGroup(t *testing.T) {
	tests := []struct {
		name    string
		product domain.ProductRecord
		want    int
	}{
		{"top level", domain.ProductRecord{NovaGroup: 4}, 4},
		{"nested in nutrition", domain.ProductRecord{Nutrition: map[string]any{"nova-group": 3.0}}, 3},
		{"top level wins", domain.ProductRecord{NovaGroup: 2, Nutrition: map[string]any{"nova_group": 4.0}}, 2},
		{"out of range ignored", domain.ProductRecord{NovaGroup: 7}, 0},
		{"absent", domain.ProductRecord{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := novaGroup(&tt.product); got != tt.want {
				t.Errorf("novaGroup = %d, want %d", got, tt.want)
			}
		})
	}
}
