package scoring

import (
	"github.com/scoremyfood/backend/internal/domain"
)

// scoreNutrients computes the nutrient-profile sub-score: the product starts
// at 100, loses band penalties for sugar (plus a free-sugar surcharge when
// free sugars are separately declared), saturated fat, salt, energy density
// and trans fat, and gains band bonuses for fiber, protein and FVNL content.
// Beverage vs. solid thresholds are selected by classifyBeverage; category
// tuning adjusts the bands before any penalty is computed.
func (e *Engine) scoreNutrients(p *domain.ProductRecord, beverage bool, tuning categoryTuning) domain.SubScore {
	bands := e.cfg.Solid
	if beverage {
		bands = e.cfg.Beverage
	}

	// Category tuning: tighten the sugar low bound (never below zero), relax
	// the saturated-fat bounds multiplicatively, extend fiber/protein bonuses.
	sugarBand := bands.Sugar
	sugarBand.Low -= tuning.SugarLowTighten
	if sugarBand.Low < 0 {
		sugarBand.Low = 0
	}
	freeSugarBand := bands.FreeSugar
	freeSugarBand.Low -= tuning.SugarLowTighten
	if freeSugarBand.Low < 0 {
		freeSugarBand.Low = 0
	}
	satFatBand := bands.SatFat
	satFatBand.Low *= tuning.SatFatRelax
	satFatBand.High *= tuning.SatFatRelax
	fiberBand := bands.Fiber
	fiberBand.Max += tuning.FiberBonus
	proteinBand := bands.Protein
	proteinBand.Max += tuning.ProteinBonus

	detail := map[string]float64{}
	var notes []domain.Note

	// Penalty terms default to zero when the reading is absent.
	sugar, _ := readNutrient(p.Nutrition, sugarAliases)
	satFat, _ := readNutrient(p.Nutrition, satFatAliases)
	salt, _ := saltFromSodium(p.Nutrition)
	kcal, _ := energyKcal(p.Nutrition)
	transFat, _ := readNutrient(p.Nutrition, transFatAliases)

	sugarPen := bandPenalty(sugar, sugarBand)
	satFatPen := bandPenalty(satFat, satFatBand)
	saltPen := bandPenalty(salt, bands.Salt)
	energyPen := 0.0
	if !tuning.IgnoreEnergy {
		energyPen = bandPenalty(kcal, bands.Energy)
	}
	transPen := 0.0
	if transFat >= e.cfg.TransFat.Cutoff {
		transPen = e.cfg.TransFat.Penalty
	}

	// Free sugars, when separately declared, add a surcharge on top of the
	// total-sugar penalty rather than replacing it.
	freeSugarPen := 0.0
	if freeSugar, ok := readNutrient(p.Nutrition, freeSugarAliases); ok {
		freeSugarPen = bandPenalty(freeSugar, freeSugarBand)
	}

	detail["sugar_g"] = sugar
	detail["sat_fat_g"] = satFat
	detail["salt_g"] = salt
	detail["energy_kcal"] = kcal
	detail["trans_fat_g"] = transFat
	detail["penalty_sugar"] = sugarPen
	detail["penalty_free_sugar"] = freeSugarPen
	detail["penalty_sat_fat"] = satFatPen
	detail["penalty_salt"] = saltPen
	detail["penalty_energy"] = energyPen
	detail["penalty_trans_fat"] = transPen

	// Bonus terms require explicit data; absent readings contribute nothing.
	fiberBonus := 0.0
	if fiber, ok := readNutrient(p.Nutrition, fiberAliases); ok {
		fiberBonus = bandPenalty(fiber, fiberBand)
	}
	proteinBonus := 0.0
	if protein, ok := readNutrient(p.Nutrition, proteinAliases); ok {
		proteinBonus = bandPenalty(protein, proteinBand)
	}
	fvnlBonus := 0.0
	fvnl, fvnlKnown := readNutrient(p.Nutrition, fvnlAliases)
	if fvnlKnown {
		// Highest tier whose minimum is met; tiers are not summed.
		for _, tier := range e.cfg.FVNL {
			if fvnl >= tier.Min {
				fvnlBonus = tier.Bonus
				break
			}
		}
	}
	detail["bonus_fiber"] = fiberBonus
	detail["bonus_protein"] = proteinBonus
	detail["bonus_fvnl"] = fvnlBonus

	// Qualitative notes, gated relative to the (tuned) band bounds.
	if sugar >= sugarBand.High {
		notes = append(notes, domain.Note{Text: "High sugar", Polarity: domain.NoteNegative})
	} else if sugar >= (sugarBand.Low+sugarBand.High)/2 {
		notes = append(notes, domain.Note{Text: "Moderate sugar", Polarity: domain.NoteNegative})
	}
	if satFat >= satFatBand.High {
		notes = append(notes, domain.Note{Text: "High saturated fat", Polarity: domain.NoteNegative})
	} else if satFat >= (satFatBand.Low+satFatBand.High)/2 {
		notes = append(notes, domain.Note{Text: "Moderate saturated fat", Polarity: domain.NoteNegative})
	}
	if salt >= bands.Salt.High {
		notes = append(notes, domain.Note{Text: "High salt", Polarity: domain.NoteNegative})
	}
	if transPen > 0 {
		notes = append(notes, domain.Note{Text: "Contains trans fat", Polarity: domain.NoteNegative})
	}
	if fiberBonus >= fiberBand.Max/2 {
		notes = append(notes, domain.Note{Text: "Good fiber", Polarity: domain.NotePositive})
	}
	if proteinBonus >= proteinBand.Max/2 {
		notes = append(notes, domain.Note{Text: "Good protein", Polarity: domain.NotePositive})
	}
	if fvnlKnown && fvnl >= 40 {
		notes = append(notes, domain.Note{Text: "High fruit/veg/nuts/legumes", Polarity: domain.NotePositive})
	}

	penalties := sugarPen + freeSugarPen + satFatPen + saltPen + energyPen + transPen
	bonuses := fiberBonus + proteinBonus + fvnlBonus

	return domain.SubScore{
		Score:  clamp(100-penalties+bonuses, 0, 100),
		Detail: detail,
		Notes:  notes,
	}
}
