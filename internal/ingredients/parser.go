// Package ingredients parses free-text ingredient lists from food labels:
// it locates the ingredient section, splits items, detects allergens, and
// extracts E/INS additive codes classified against a reference table.
package ingredients

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/scoremyfood/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// E/INS additive codes like: E621, E-621, e 621, INS150d, ins 150D
	eInsCodeRe = regexp.MustCompile(`(?i)\b(?:E|INS)\s*[-\s]?(\d{3,4}[a-d]?)\b`)

	fancyDashRe  = regexp.MustCompile("[‐-―]")
	multiSpaceRe = regexp.MustCompile(`\s+`)

	percentRe       = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?)\s*%`)
	parenPercentRe  = regexp.MustCompile(`\((\d{1,3}(?:\.\d+)?)\s*%\)`)
	emptyParenRe    = regexp.MustCompile(`\(\s*\)`)
	allergenLabelRe = regexp.MustCompile(`(?i)allerg(?:en|y)[^:]*:\s*([^.\n]+)`)
	allergenSplitRe = regexp.MustCompile(`[,\s;/]+`)
	containsLineRe  = regexp.MustCompile(`\bcontains\b[^.\n]*`)
	wordSplitRe     = regexp.MustCompile(`[^a-z]+`)
)

// Section markers used to isolate the ingredient list from surrounding label
// text (OCR output includes nutrition tables, addresses, storage advice).
var (
	sectionStartKeys = []string{"ingredients", "ingredient"}
	sectionEndKeys   = []string{
		"allergen", "allergy", "nutrition", "nutritional",
		"storage", "best before", "manufactured", "packed by",
	}
)

// allergenKeywords are the declared-allergen terms recognized in label text.
var allergenKeywords = map[string]bool{
	"milk": true, "lactose": true, "butter": true, "ghee": true,
	"soy": true, "soya": true,
	"wheat": true, "gluten": true, "barley": true, "rye": true, "oats": true,
	"egg": true, "albumen": true,
	"peanut": true,
	"almond": true, "hazelnut": true, "walnut": true, "cashew": true,
	"pecan": true, "pistachio": true, "macadamia": true,
	"sesame": true, "mustard": true, "fish": true, "celery": true, "lupin": true,
	"shellfish": true, "crustacean": true, "shrimp": true, "prawn": true,
	"crab": true, "lobster": true,
	"sulfite": true, "sulphite": true,
}

// additiveInfo is one reference-table entry.
type additiveInfo struct {
	name string
	risk string
}

// additiveTable maps canonical E-codes to name and risk tier. Unknown codes
// classify as moderate so the risk-tier penalty still applies downstream.
var additiveTable = map[string]additiveInfo{
	// Flavour enhancers
	"E621": {"Monosodium glutamate (MSG)", "moderate"},
	"E627": {"Disodium guanylate", "moderate"},
	"E631": {"Disodium inosinate", "moderate"},
	// Colours
	"E102":  {"Tartrazine", "avoid"},
	"E110":  {"Sunset Yellow FCF", "avoid"},
	"E129":  {"Allura Red AC", "avoid"},
	"E150D": {"Caramel colour IV (sulphite ammonia)", "moderate"},
	"E171":  {"Titanium dioxide", "avoid"},
	// Preservatives
	"E202": {"Potassium sorbate", "moderate"},
	"E211": {"Sodium benzoate", "moderate"},
	"E250": {"Sodium nitrite", "avoid"},
	"E251": {"Sodium nitrate", "avoid"},
	"E320": {"Butylated hydroxyanisole (BHA)", "avoid"},
	"E321": {"Butylated hydroxytoluene (BHT)", "avoid"},
	// Sweeteners
	"E950": {"Acesulfame K", "moderate"},
	"E951": {"Aspartame", "avoid"},
	"E955": {"Sucralose", "moderate"},
	"E960": {"Steviol glycosides", "safe"},
	// Low-concern processing aids
	"E296": {"Malic acid", "safe"},
	"E330": {"Citric acid", "safe"},
	"E331": {"Sodium citrates", "safe"},
	"E170": {"Calcium carbonate", "safe"},
	"E471": {"Mono-/diglycerides of fatty acids", "moderate"},
}

// ParseResult is the structured output of a label parse.
type ParseResult struct {
	Ingredients []domain.Ingredient
	Allergens   []string
	Additives   []domain.Additive
}

// normalizeText flattens newlines and fancy dashes, and collapses runs of
// whitespace.
func normalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	s = fancyDashRe.ReplaceAllString(s, "-")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// findSection returns the text between the first start marker and the
// earliest end marker after it, or "" when no start marker is found.
func findSection(text string, startKeys, endKeys []string) string {
	t := normalizeText(text)
	if t == "" {
		return ""
	}
	lower := strings.ToLower(t)

	start, startIdx := -1, -1
	for _, k := range startKeys {
		idx := strings.Index(lower, k)
		if idx < 0 {
			continue
		}
		// Earliest marker wins; at the same position the longer key wins,
		// so "ingredients" doesn't leave a stray "s" behind.
		if startIdx < 0 || idx < startIdx || (idx == startIdx && idx+len(k) > start) {
			startIdx = idx
			start = idx + len(k)
		}
	}
	if start < 0 {
		return ""
	}

	end := len(t)
	for _, k := range endKeys {
		if idx := strings.Index(lower[start:], k); idx >= 0 && start+idx < end {
			end = start + idx
		}
	}
	return strings.Trim(t[start:end], " :.-")
}

// splitTopLevelCommas splits on commas outside parentheses, so compound
// items like "emulsifier (soy lecithin, E471)" stay whole.
func splitTopLevelCommas(s string) []string {
	var parts []string
	var buf strings.Builder
	depth := 0
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
		if ch == ',' && depth == 0 {
			if part := strings.TrimSpace(buf.String()); part != "" {
				parts = append(parts, part)
			}
			buf.Reset()
			continue
		}
		buf.WriteRune(ch)
	}
	if part := strings.TrimSpace(buf.String()); part != "" {
		parts = append(parts, part)
	}
	return parts
}

// ExtractAdditiveCodes finds E/INS codes in the text and canonicalizes them
// to E<digits> form, deduplicated in first-seen order.
func ExtractAdditiveCodes(text string) []string {
	if text == "" {
		return nil
	}
	var codes []string
	seen := map[string]bool{}
	for _, m := range eInsCodeRe.FindAllStringSubmatch(text, -1) {
		code := "E" + strings.ToUpper(m[1])
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

// ClassifyAdditives resolves codes against the reference table. Codes the
// table does not know are kept with risk "moderate" rather than dropped.
func ClassifyAdditives(codes []string) []domain.Additive {
	var out []domain.Additive
	for _, code := range codes {
		info, ok := additiveTable[strings.ToUpper(code)]
		if !ok {
			out = append(out, domain.Additive{Code: code, Name: "Unknown additive", Risk: "moderate"})
			continue
		}
		out = append(out, domain.Additive{Code: code, Name: info.name, Risk: info.risk})
	}
	return out
}

// Parse extracts structured ingredients, declared allergens, and classified
// additives from raw label text. All paths tolerate empty or malformed
// input and return empty results rather than erroring.
func Parse(fullText string) ParseResult {
	var result ParseResult

	block := findSection(fullText, sectionStartKeys, sectionEndKeys)
	if block == "" {
		// No labelled section: treat the whole text as the ingredient list
		// when it already looks comma-separated (the text-analyze endpoint
		// sends bare lists without the "Ingredients:" prefix).
		if strings.Contains(fullText, ",") {
			block = normalizeText(fullText)
		}
	}
	for _, tok := range splitTopLevelCommas(block) {
		tok = strings.Trim(tok, " .;")
		var pct *float64
		if m := percentRe.FindStringSubmatch(tok); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				pct = &v
			}
		}
		name := parenPercentRe.ReplaceAllString(tok, "")
		name = percentRe.ReplaceAllString(name, "")
		name = emptyParenRe.ReplaceAllString(name, "")
		name = strings.TrimSpace(multiSpaceRe.ReplaceAllString(name, " "))
		if name != "" {
			result.Ingredients = append(result.Ingredients, domain.Ingredient{Name: name, Percent: pct})
		}
	}

	result.Allergens = detectAllergens(fullText)

	codes := ExtractAdditiveCodes(strings.ToLower(fullText))
	result.Additives = ClassifyAdditives(codes)

	return result
}

// detectAllergens scans the allergen declaration line and "contains ..."
// sentences for known allergen terms. Output is sorted for stable payloads.
func detectAllergens(text string) []string {
	found := map[string]bool{}
	low := strings.ToLower(text)

	if m := allergenLabelRe.FindStringSubmatch(text); m != nil {
		for _, w := range allergenSplitRe.Split(strings.ToLower(m[1]), -1) {
			w = strings.TrimRight(strings.TrimSpace(w), ".")
			if allergenKeywords[w] {
				found[w] = true
			} else if singular := strings.TrimSuffix(w, "s"); allergenKeywords[singular] {
				found[singular] = true
			}
		}
	}
	for _, line := range containsLineRe.FindAllString(low, -1) {
		for _, w := range wordSplitRe.Split(line, -1) {
			if allergenKeywords[w] {
				found[w] = true
			} else if singular := strings.TrimSuffix(w, "s"); allergenKeywords[singular] {
				found[singular] = true
			}
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for a := range found {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
