package scoring

import (
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// ComponentWeights starts from the default table, multiplies in every
// matching rule and the BMI calorie factor, then renormalizes over the
// available components so the result sums to 1. It also returns the names
// of the rules that fired.
func ComponentWeights(
	t scoremodel.WeightTable,
	tier nutrition.Tier,
	cat nutrition.Category,
	conds nutrition.Conditions,
	available map[scoremodel.Component]bool,
) (map[scoremodel.Component]float64, []string) {
	raw := make(map[scoremodel.Component]float64, len(scoremodel.Components))
	for _, c := range scoremodel.Components {
		if w, ok := t.Default[c]; ok {
			raw[c] = w
		}
	}

	applied := []string{}
	for _, r := range t.Rules {
		if !r.Matches(tier, cat, conds) {
			continue
		}
		for c, f := range r.Factors {
			if _, ok := raw[c]; ok {
				raw[c] *= f
			}
		}
		applied = append(applied, r.Name)
	}
	if f, ok := t.BMICalorieFactor[conds.BMIClass]; ok && conds.BMIClass != nutrition.BMIUnknown {
		if _, ok := raw[scoremodel.CaloriesComponent]; ok {
			raw[scoremodel.CaloriesComponent] *= f
			applied = append(applied, "bmi_"+string(conds.BMIClass))
		}
	}

	return renormalize(raw, available), applied
}

func renormalize(raw map[scoremodel.Component]float64, available map[scoremodel.Component]bool) map[scoremodel.Component]float64 {
	sum := 0.0
	for _, c := range scoremodel.Components {
		if available[c] && raw[c] > 0 {
			sum += raw[c]
		}
	}
	out := make(map[scoremodel.Component]float64)
	if sum <= 0 {
		return out
	}
	for _, c := range scoremodel.Components {
		if available[c] && raw[c] > 0 {
			out[c] = raw[c] / sum
		}
	}
	return out
}
