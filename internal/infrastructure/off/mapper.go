package off

import (
	"strings"

	"github.com/scoremyfood/backend/internal/domain"
	"github.com/scoremyfood/backend/internal/ingredients"
)

// offProduct is the subset of an Open Food Facts product payload the engine
// consumes. Nutriment values are loosely typed; the scoring layer coerces.
type offProduct struct {
	ProductName       string         `json:"product_name"`
	ProductNameEn     string         `json:"product_name_en"`
	GenericName       string         `json:"generic_name"`
	Brands            string         `json:"brands"`
	Categories        string         `json:"categories"`
	Quantity          string         `json:"quantity"`
	IngredientsText   string         `json:"ingredients_text"`
	IngredientsTextEn string         `json:"ingredients_text_en"`
	AdditivesTags     []string       `json:"additives_tags"`
	NovaGroup         int            `json:"nova_group"`
	Nutriments        map[string]any `json:"nutriments"`
}

// Name returns the best available product name using the fallback order:
// product_name -> product_name_en -> generic_name -> "".
func (p *offProduct) Name() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.GenericName
}

// mapToProductRecord converts an OFF payload into the engine's input shape.
// Sodium arrives in grams per 100g; the record carries it as sodium_mg, the
// unit the scoring aliases expect. The additives_tags list ("en:e250") is
// classified against the ingredients reference table.
func mapToProductRecord(barcode string, p *offProduct) *domain.ProductRecord {
	nutrition := make(map[string]any, len(p.Nutriments)+1)
	for k, v := range p.Nutriments {
		nutrition[k] = v
	}
	if sodiumG, ok := floatValue(p.Nutriments["sodium_100g"]); ok {
		nutrition["sodium_mg"] = sodiumG * 1000.0
	}

	ingredientsText := p.IngredientsText
	if ingredientsText == "" {
		ingredientsText = p.IngredientsTextEn
	}

	return &domain.ProductRecord{
		Barcode:         barcode,
		Name:            p.Name(),
		Brand:           firstBrand(p.Brands),
		Categories:      p.Categories,
		Quantity:        p.Quantity,
		IngredientsText: ingredientsText,
		Additives:       ingredients.ClassifyAdditives(tagCodes(p.AdditivesTags)),
		Nutrition:       nutrition,
		NovaGroup:       p.NovaGroup,
	}
}

// firstBrand takes the first entry of the comma-separated brands field.
func firstBrand(brands string) string {
	if idx := strings.Index(brands, ","); idx >= 0 {
		brands = brands[:idx]
	}
	return strings.TrimSpace(brands)
}

// tagCodes strips the language prefix from OFF additive tags ("en:e250")
// and canonicalizes to E-code form.
func tagCodes(tags []string) []string {
	var codes []string
	for _, tag := range tags {
		if idx := strings.Index(tag, ":"); idx >= 0 {
			tag = tag[idx+1:]
		}
		code := strings.ToUpper(strings.TrimSpace(tag))
		if code == "" {
			continue
		}
		if !strings.HasPrefix(code, "E") {
			code = "E" + code
		}
		codes = append(codes, code)
	}
	return codes
}

// floatValue coerces a loosely-typed nutriment value.
func floatValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
