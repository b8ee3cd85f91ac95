package scoring

import (
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// AppliedAdjustment records one post-processing step that changed the score.
type AppliedAdjustment struct {
	Code   string  `json:"code"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

type adjuster struct {
	score   float64
	applied []AppliedAdjustment
	diags   []Diagnostic
}

func (a *adjuster) set(code string, v float64) {
	if v == a.score {
		return
	}
	a.applied = append(a.applied, AppliedAdjustment{Code: code, Before: a.score, After: v})
	a.score = v
}

func (a *adjuster) note(d Diagnostic) {
	d.Stage = StageAdjust
	a.diags = append(a.diags, d)
}

// PostProcess applies the categorical bonuses, ceilings and penalties to a
// 0..100 base score and clamps the result to [0,100].
func PostProcess(
	m *scoremodel.Model,
	base float64,
	ctx nutrition.FoodContext,
	tier nutrition.Tier,
	per100 nutrition.FoodNutrients,
) (float64, []AppliedAdjustment, []Diagnostic) {
	adj := m.Adjustments
	a := &adjuster{score: base, applied: []AppliedAdjustment{}, diags: []Diagnostic{}}

	if tier != nutrition.TierUltra {
		if ctx.FatType == nutrition.HealthyFat && healthyFatShare(per100, adj.HealthyFatMaxSaturatedShare) && adj.HealthyFatBonus > 0 {
			a.set("healthy_fat_bonus", a.score*adj.HealthyFatBonus)
		}
		if ctx.SugarType == nutrition.NaturalSugar && tier <= nutrition.TierCulinary && adj.NaturalSugarBonus > 0 {
			a.set("natural_sugar_bonus", a.score*adj.NaturalSugarBonus)
		}
	}

	if f, ok := adj.Cooking[ctx.CookingMethod]; ok {
		a.set("cooking_"+string(ctx.CookingMethod), a.score*f)
		if f < 1 {
			a.note(Diagnostic{
				Code:     string(ctx.CookingMethod),
				Kind:     scoremodel.Warning,
				Severity: scoremodel.SeverityCaution,
				Message:  "Frying adds fat and lowers the score.",
			})
		}
	}

	switch tier {
	case nutrition.TierWhole:
		bonus := adj.WholeBonus
		if ctx.Category.IsProduce() && ctx.Quality == nutrition.Excellent && adj.WholeProduceExcellentBonus > bonus {
			bonus = adj.WholeProduceExcellentBonus
		}
		if bonus > 0 {
			// The bonus may not lift a score past the cap, and never lowers
			// a score that is already above it.
			a.set("whole_food_bonus", min(a.score*bonus, max(a.score, adj.WholeBonusCap)))
		}
	case nutrition.TierProcessed:
		if adj.ProcessedCeiling > 0 {
			a.set("processed_ceiling", min(a.score, adj.ProcessedCeiling))
		}
	case nutrition.TierUltra:
		if f, ok := adj.UltraQuality[ctx.Quality]; ok {
			a.set("quality_"+string(ctx.Quality), a.score*f)
		}
		a.set("ultra_processed_ceiling", min(a.score, ultraCeiling(adj, ctx, per100)))
		for _, p := range adj.Combinations {
			if !allHold(p.When, per100) {
				continue
			}
			a.set(p.Code, a.score*p.Factor)
			a.note(Diagnostic{
				Code:     p.Code,
				Kind:     scoremodel.Warning,
				Severity: scoremodel.SeverityHigh,
				Message:  p.Message,
			})
		}
	}

	if ctx.HasArtificialSweeteners {
		a.note(Diagnostic{
			Code:     "artificial_sweeteners",
			Kind:     scoremodel.Info,
			Severity: scoremodel.SeverityInfo,
			Message:  "Contains artificial sweeteners.",
		})
	}
	if ctx.HasPreservatives {
		a.note(Diagnostic{
			Code:     "preservatives",
			Kind:     scoremodel.Info,
			Severity: scoremodel.SeverityInfo,
			Message:  "Contains preservatives.",
		})
	}

	a.set("clamp", clamp(a.score, 0, 100))
	return a.score, a.applied, a.diags
}

// ultraCeiling is the tightest cap that applies to an ultra-processed food.
func ultraCeiling(adj scoremodel.Adjustments, ctx nutrition.FoodContext, per100 nutrition.FoodNutrients) float64 {
	ceiling := adj.UltraCeiling
	if ceiling <= 0 {
		ceiling = 100
	}
	if c, ok := adj.UltraCategoryCaps[ctx.Category]; ok && c < ceiling {
		ceiling = c
	}
	if ctx.Category == nutrition.Beverage && sugaryBeverage(adj, ctx, per100) && adj.SugaryBeverageCap > 0 {
		ceiling = min(ceiling, adj.SugaryBeverageCap)
	}
	return ceiling
}

func sugaryBeverage(adj scoremodel.Adjustments, ctx nutrition.FoodContext, per100 nutrition.FoodNutrients) bool {
	if sugar, ok := per100.Get(nutrition.Sugar); ok && sugar > adj.SugaryBeverageMinSugar {
		return true
	}
	return ctx.SugarType == nutrition.AddedSugar || ctx.SugarType == nutrition.MixedSugar
}

func healthyFatShare(per100 nutrition.FoodNutrients, maxShare float64) bool {
	total, ok := per100.Get(nutrition.TotalFat)
	if !ok || !(total > 0) {
		return false
	}
	sat, ok := per100.Get(nutrition.SaturatedFat)
	if !ok {
		return false
	}
	return sat/total < maxShare
}

// allHold reports whether every threshold holds. A threshold on a missing
// nutrient never holds.
func allHold(ts []scoremodel.Threshold, per100 nutrition.FoodNutrients) bool {
	if len(ts) == 0 {
		return false
	}
	for _, t := range ts {
		v, ok := per100.Get(t.Nutrient)
		if !ok || !t.Holds(v) {
			return false
		}
	}
	return true
}
