package scoring

import (
	"fmt"
	"strings"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// Mode selects whether the declared serving affects the score beyond the
// per-100 rescaling.
type Mode string

const (
	PerHundred   Mode = "per_100g"
	PortionAware Mode = "portion_aware"
)

// ComponentScores evaluates the 0..100 ladder score of every component that
// has data. Micronutrient density comes from the category table and is
// absent when the category is unknown.
func ComponentScores(m *scoremodel.Model, per100 nutrition.FoodNutrients, ctx nutrition.FoodContext, conds nutrition.Conditions) map[scoremodel.Component]float64 {
	out := make(map[scoremodel.Component]float64)
	for _, c := range scoremodel.Components {
		n, ok := c.Nutrient()
		if !ok {
			continue
		}
		v, ok := per100.Get(n)
		if !ok || !finite(v) {
			continue
		}
		l, ok := m.Ladders.For(c, conds)
		if !ok {
			continue
		}
		out[c] = l.Score(v)
	}
	if base, ok := m.Micronutrients.Categories[ctx.Category]; ok {
		if ctx.IsFortified {
			base += m.Micronutrients.FortifiedBonus
		}
		out[scoremodel.MicronutrientsComponent] = clamp(base, 0, 100)
	}
	return out
}

// MarkerContribution is one marker's share of the marker risk.
type MarkerContribution struct {
	Level  float64 `json:"level"`
	Impact float64 `json:"impact"`
	Weight float64 `json:"weight"`
	Risk   float64 `json:"risk"`
}

// MarkerRisk computes Σ w·n·impact·(1+γ·n) / Σ w over the available markers.
// The result is signed: protective foods lower it below zero.
func MarkerRisk(m *scoremodel.Model, levels MarkerLevels, impact map[nutrition.Marker]float64) (float64, map[nutrition.Marker]MarkerContribution) {
	contrib := make(map[nutrition.Marker]MarkerContribution, len(levels.Values))
	totalWeight := 0.0
	for _, mk := range m.ConfiguredMarkers() {
		if _, ok := levels.Values[mk]; ok {
			totalWeight += m.MarkerWeights[mk]
		}
	}
	if totalWeight <= 0 {
		return 0, contrib
	}

	risk := 0.0
	for _, mk := range m.ConfiguredMarkers() {
		n, ok := levels.Values[mk]
		if !ok {
			continue
		}
		w := m.MarkerWeights[mk]
		r := w * n * impact[mk] * (1 + m.Gamma*n) / totalWeight
		contrib[mk] = MarkerContribution{
			Level:  n,
			Impact: impact[mk],
			Weight: w / totalWeight,
			Risk:   r,
		}
		risk += r
	}
	return risk, contrib
}

// Aggregate is the output of the risk aggregation stage.
type Aggregate struct {
	NutrientScore     float64 `json:"nutrient_score"`
	NutrientRisk      float64 `json:"nutrient_risk"`
	MarkerRisk        float64 `json:"marker_risk"`
	ServingMultiplier float64 `json:"serving_multiplier"`
	Risk              float64 `json:"risk"`
	Suitability       float64 `json:"suitability"`
	Neutral           bool    `json:"neutral"`
}

// AggregateRisk combines the weighted nutrient score with the marker risk
// into a suitability in [0,1]. With no component scores the model's neutral
// suitability is returned.
func AggregateRisk(
	m *scoremodel.Model,
	scores, weights map[scoremodel.Component]float64,
	markerRisk float64,
	serving Serving,
	mode Mode,
) Aggregate {
	agg := Aggregate{MarkerRisk: markerRisk, ServingMultiplier: 1}
	if len(weights) == 0 {
		agg.Neutral = true
		agg.NutrientScore = m.NeutralSuitability * 100
		agg.NutrientRisk = 1 - m.NeutralSuitability
		agg.Risk = agg.NutrientRisk
		agg.Suitability = m.NeutralSuitability
		return agg
	}

	for _, c := range scoremodel.Components {
		if w, ok := weights[c]; ok {
			agg.NutrientScore += w * scores[c]
		}
	}
	agg.NutrientScore = clamp(agg.NutrientScore, 0, 100)
	agg.NutrientRisk = 1 - agg.NutrientScore/100

	risk := agg.NutrientRisk + m.MarkerInfluence*markerRisk
	if mode == PortionAware {
		agg.ServingMultiplier = m.Serving.Multiplier(serving.Grams)
		// A negative risk is already clamped to full suitability; scaling it
		// would reward small portions.
		if risk > 0 {
			risk *= agg.ServingMultiplier
		}
	}
	agg.Risk = risk
	agg.Suitability = clamp01(1 - risk)
	return agg
}

// EmptyFood reports a food that carries calories but neither protein nor
// fiber, with at least one of the two actually reported. Zero-calorie foods
// are never empty.
func EmptyFood(per100 nutrition.FoodNutrients) bool {
	cal, ok := per100.Get(nutrition.Calories)
	if !ok || !(cal > 0) {
		return false
	}
	protein, hasProtein := per100.Get(nutrition.Protein)
	fiber, hasFiber := per100.Get(nutrition.Fiber)
	if !hasProtein && !hasFiber {
		return false
	}
	if hasProtein && protein > 0 {
		return false
	}
	if hasFiber && fiber > 0 {
		return false
	}
	return true
}

const markerNoticeThreshold = 0.05

// markerDiagnostics flags markers that the food pushes noticeably up or
// down for this person.
func markerDiagnostics(m *scoremodel.Model, contrib map[nutrition.Marker]MarkerContribution, levels MarkerLevels) []Diagnostic {
	out := []Diagnostic{}
	for _, mk := range m.ConfiguredMarkers() {
		c, ok := contrib[mk]
		if !ok {
			continue
		}
		name := strings.ReplaceAll(string(mk), "_", " ")
		switch {
		case c.Risk > markerNoticeThreshold:
			out = append(out, Diagnostic{
				Code:     "raises_" + string(mk),
				Kind:     scoremodel.Warning,
				Severity: scoremodel.SeverityCaution,
				Stage:    StageAggregate,
				Message:  fmt.Sprintf("This food adds to the risk from your elevated %s.", name),
				Metric:   string(mk),
				Value:    round4(c.Risk),
			})
		case c.Risk < -markerNoticeThreshold:
			out = append(out, Diagnostic{
				Code:     "supports_" + string(mk),
				Kind:     scoremodel.Recommendation,
				Severity: scoremodel.SeverityInfo,
				Stage:    StageAggregate,
				Message:  fmt.Sprintf("This food may help with your %s.", name),
				Metric:   string(mk),
				Value:    round4(c.Risk),
			})
		}
	}
	if len(levels.Values) == 0 && len(levels.Missing) > 0 {
		out = append(out, Diagnostic{
			Code:     "add_health_markers",
			Kind:     scoremodel.Recommendation,
			Severity: scoremodel.SeverityInfo,
			Stage:    StageNormalize,
			Message:  "Add lab results to your profile for a personalised score.",
		})
	}
	return out
}
