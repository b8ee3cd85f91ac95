package scoring

import (
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// EvaluateRules emits the configured warnings and recommendations whose
// thresholds hold on the per-100 nutrients. Rules are read in order and the
// first match per code wins, so stricter condition-specific rules are listed
// before the general ones.
func EvaluateRules(rules []scoremodel.DiagnosticRule, per100 nutrition.FoodNutrients, tier nutrition.Tier, conds nutrition.Conditions) []Diagnostic {
	out := []Diagnostic{}
	seen := make(map[string]bool)
	for _, r := range rules {
		if seen[r.Code] {
			continue
		}
		if r.Condition != "" && !conds.Has(r.Condition) {
			continue
		}
		if len(r.Tiers) > 0 && !containsTier(r.Tiers, tier) {
			continue
		}
		if len(r.When) > 0 && !allHold(r.When, per100) {
			continue
		}
		d := Diagnostic{
			Code:     r.Code,
			Kind:     r.Kind,
			Severity: r.Severity,
			Stage:    StageRules,
			Message:  r.Message,
		}
		if len(r.When) > 0 {
			t := r.When[0]
			v, _ := per100.Get(t.Nutrient)
			d.Metric = string(t.Nutrient) + "_per_100"
			d.Value = round4(v)
			switch {
			case t.Above != nil:
				d.Limit = *t.Above
			case t.Below != nil:
				d.Limit = *t.Below
			}
		}
		seen[r.Code] = true
		out = append(out, d)
	}
	return out
}

func containsTier(ts []nutrition.Tier, t nutrition.Tier) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
