package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
)

const perHundred = 100.0

// Serving is the declared portion expressed on a gram/millilitre basis.
type Serving struct {
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Grams    float64 `json:"grams"`
	Declared bool    `json:"declared"`
}

// servingPattern reads the leading amount and the unit token right after it.
// Anything that follows, as in "330 ml bottle", is ignored.
var servingPattern = regexp.MustCompile(`^\s*(?:per\s+)?(\d+(?:[.,]\d+)*)\s*(fl\.?\s*oz\b\.?|[a-zA-Z]+\.?)?`)

// unitFactors converts a unit to grams, treating 1 ml as 1 g.
var unitFactors = map[string]float64{
	"":           1,
	"g":          1,
	"gr":         1,
	"gram":       1,
	"grams":      1,
	"mg":         0.001,
	"kg":         1000,
	"oz":         28.3495,
	"lb":         453.592,
	"lbs":        453.592,
	"ml":         1,
	"millilitre": 1,
	"milliliter": 1,
	"cl":         10,
	"dl":         100,
	"l":          1000,
	"litre":      1000,
	"liter":      1000,
	"fl oz":      29.5735,
	"floz":       29.5735,
	"cup":        240,
	"cups":       240,
	"tbsp":       15,
	"tsp":        5,
}

// canonicalUnit lower-cases a unit, drops dots and plural "s", and reports
// its gram factor.
func canonicalUnit(unit string) (string, float64, bool) {
	u := strings.ToLower(strings.ReplaceAll(unit, ".", ""))
	u = strings.Join(strings.Fields(u), " ")
	if f, ok := unitFactors[u]; ok {
		return u, f, true
	}
	if single := strings.TrimSuffix(u, "s"); single != u {
		if f, ok := unitFactors[single]; ok {
			return single, f, true
		}
	}
	return "", 0, false
}

func unitFactor(unit string) (float64, bool) {
	_, f, ok := canonicalUnit(unit)
	return f, ok
}

// parseAmount reads a label number. A comma followed by exactly three digits
// groups thousands ("1,000"); a comma followed by one or two digits is a
// decimal comma ("1,5").
func parseAmount(text string) (float64, bool) {
	whole, frac := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		whole, frac = text[:i], text[i:]
	}
	if strings.Contains(whole, ",") {
		groups := strings.Split(whole, ",")
		thousands := true
		for _, g := range groups[1:] {
			if len(g) != 3 {
				thousands = false
			}
		}
		switch {
		case thousands:
			whole = strings.Join(groups, "")
		case len(groups) == 2 && frac == "" && len(groups[1]) < 3:
			whole = groups[0] + "." + groups[1]
		default:
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(whole+frac, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseServing reads a leading number and a mass or volume unit, as in
// "250 ml", "20g", "1.5 L", "30 g per serving" or "per 100g". A bare number
// is taken as grams.
func ParseServing(text string) (Serving, bool) {
	m := servingPattern.FindStringSubmatch(text)
	if m == nil {
		return Serving{}, false
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return Serving{}, false
	}
	unit, f, ok := canonicalUnit(m[2])
	if !ok {
		// "2 slices (40 g)" style labels: retry on the parenthesised part.
		if open := strings.Index(text, "("); open >= 0 {
			return ParseServing(strings.TrimSuffix(strings.TrimSpace(text[open+1:]), ")"))
		}
		return Serving{}, false
	}
	return Serving{
		Amount:   amount,
		Unit:     unit,
		Grams:    amount * f,
		Declared: true,
	}, true
}

// WithServingText sets the serving on a bundle from label text. Text that
// cannot be parsed leaves the bundle as it was.
func WithServingText(n nutrition.FoodNutrients, text string) nutrition.FoodNutrients {
	s, ok := ParseServing(text)
	if !ok {
		return n
	}
	n.ServingSize = nutrition.Float(s.Amount)
	n.ServingUnit = s.Unit
	return n
}

// NormalizeServing rescales every present nutrient to a per-100 basis.
// Missing, non-positive or unrecognised servings are treated as already
// per-100 and leave the bundle unchanged.
func NormalizeServing(n nutrition.FoodNutrients) (nutrition.FoodNutrients, Serving, []Diagnostic) {
	baseline := Serving{Amount: perHundred, Unit: "g", Grams: perHundred}

	if n.ServingSize == nil {
		return n, baseline, nil
	}
	size := *n.ServingSize
	f, ok := unitFactor(n.ServingUnit)
	if !ok {
		return n, baseline, []Diagnostic{info(StageServing, "serving_unit_unrecognized",
			"Serving unit not recognised; values are read as per 100 g.")}
	}
	grams := size * f
	if grams <= 0 || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return n, baseline, []Diagnostic{info(StageServing, "serving_size_invalid",
			"Serving size is not a positive number; values are read as per 100 g.")}
	}

	unit, _, _ := canonicalUnit(n.ServingUnit)
	declared := Serving{Amount: size, Unit: unit, Grams: grams, Declared: true}
	if declared.Unit == "" {
		declared.Unit = "g"
	}
	if grams == perHundred {
		return n, declared, nil
	}

	out := n.Scaled(perHundred / grams)
	out.ServingSize = nutrition.Float(perHundred)
	out.ServingUnit = baseUnit(declared.Unit)
	return out, declared, nil
}

func baseUnit(unit string) string {
	switch unit {
	case "ml", "millilitre", "milliliter", "cl", "dl", "l", "litre", "liter", "fl oz", "floz":
		return "ml"
	}
	return "g"
}
