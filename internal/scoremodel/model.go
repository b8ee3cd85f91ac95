package scoremodel

import (
	"sort"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
)

// Component is one term of the weighted nutrient score.
type Component string

const (
	SugarComponent          Component = "sugar"
	SaturatedFatComponent   Component = "saturated_fat"
	TransFatComponent       Component = "trans_fat"
	SodiumComponent         Component = "sodium"
	CaloriesComponent       Component = "calories"
	ProteinComponent        Component = "protein"
	FiberComponent          Component = "fiber"
	MicronutrientsComponent Component = "micronutrients"
)

// Components lists every weighted component in a stable order.
var Components = []Component{
	SugarComponent, SaturatedFatComponent, TransFatComponent, SodiumComponent,
	CaloriesComponent, ProteinComponent, FiberComponent, MicronutrientsComponent,
}

// Nutrient returns the nutrient a component is read from. Micronutrient
// density has no nutrient field and is derived from the food context.
func (c Component) Nutrient() (nutrition.Nutrient, bool) {
	switch c {
	case SugarComponent:
		return nutrition.Sugar, true
	case SaturatedFatComponent:
		return nutrition.SaturatedFat, true
	case TransFatComponent:
		return nutrition.TransFat, true
	case SodiumComponent:
		return nutrition.Sodium, true
	case CaloriesComponent:
		return nutrition.Calories, true
	case ProteinComponent:
		return nutrition.Protein, true
	case FiberComponent:
		return nutrition.Fiber, true
	}
	return "", false
}

// Bounds map a raw value onto [0,1]. Low > High is allowed and inverts the
// scale, for markers where lower values carry the risk (HDL).
type Bounds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Kind separates warnings from recommendations in the output.
type Kind string

const (
	Warning        Kind = "warning"
	Recommendation Kind = "recommendation"
	Info           Kind = "info"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityCaution Severity = "caution"
	SeverityHigh    Severity = "high"
)

// Model is a complete scoring configuration. A published Model is shared by
// concurrent scorers and must never be modified.
type Model struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`

	MarkerBounds   map[nutrition.Marker]Bounds                         `json:"marker_bounds"`
	NutrientBounds map[nutrition.Nutrient]Bounds                       `json:"nutrient_bounds"`
	Coefficients   map[nutrition.Nutrient]map[nutrition.Marker]float64 `json:"coefficients"`
	MarkerWeights  map[nutrition.Marker]float64                        `json:"marker_weights"`
	Gamma          float64                                             `json:"gamma"`

	// MarkerInfluence scales the marker risk before it joins the nutrient risk.
	MarkerInfluence float64 `json:"marker_influence"`
	// NeutralSuitability is returned when there is nothing to score.
	NeutralSuitability float64 `json:"neutral_suitability"`

	Weights        WeightTable        `json:"weights"`
	Ladders        LadderSet          `json:"ladders"`
	Micronutrients MicronutrientTable `json:"micronutrients"`
	Serving        ServingCurve       `json:"serving"`
	Adjustments    Adjustments        `json:"adjustments"`
	Diagnostics    []DiagnosticRule   `json:"diagnostics"`
	Labels         []LabelStep        `json:"labels"`
}

// ConfiguredMarkers returns the markers that have bounds, sorted.
func (m *Model) ConfiguredMarkers() []nutrition.Marker {
	out := make([]nutrition.Marker, 0, len(m.MarkerBounds))
	for k := range m.MarkerBounds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WeightTable starts from Default and applies every matching Rule
// multiplicatively, then the BMI calorie factor.
type WeightTable struct {
	Default          map[Component]float64          `json:"default"`
	Rules            []WeightRule                   `json:"rules"`
	BMICalorieFactor map[nutrition.BMIClass]float64 `json:"bmi_calorie_factor"`
}

// WeightRule matches on tier, category and condition. Zero values match
// anything.
type WeightRule struct {
	Name       string                `json:"name"`
	Tier       nutrition.Tier        `json:"tier,omitempty"`
	Categories []nutrition.Category  `json:"categories,omitempty"`
	Condition  nutrition.Condition   `json:"condition,omitempty"`
	Factors    map[Component]float64 `json:"factors"`
}

// Matches reports whether the rule applies.
func (r WeightRule) Matches(tier nutrition.Tier, cat nutrition.Category, conds nutrition.Conditions) bool {
	if r.Tier != nutrition.TierAny && r.Tier != tier {
		return false
	}
	if len(r.Categories) > 0 {
		found := false
		for _, c := range r.Categories {
			if c == cat {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.Condition != "" && !conds.Has(r.Condition) {
		return false
	}
	return true
}

// LadderSet holds the component score curves. Condition overrides are
// consulted in the order diabetic, high lipid, hypertension.
type LadderSet struct {
	Components         map[Component]Ladder                         `json:"components"`
	ConditionOverrides map[nutrition.Condition]map[Component]Ladder `json:"condition_overrides,omitempty"`
}

// For returns the ladder for a component under the given conditions.
func (s LadderSet) For(c Component, conds nutrition.Conditions) (Ladder, bool) {
	for _, cond := range conds.Active() {
		if l, ok := s.ConditionOverrides[cond][c]; ok {
			return l, true
		}
	}
	l, ok := s.Components[c]
	return l, ok
}

// MicronutrientTable scores micronutrient density from the food category.
type MicronutrientTable struct {
	Categories     map[nutrition.Category]float64 `json:"categories"`
	FortifiedBonus float64                        `json:"fortified_bonus"`
}

// ServingCurve shapes the portion-aware risk multiplier.
type ServingCurve struct {
	Baseline      float64 `json:"baseline"`       // size with multiplier 1.0
	SmallServing  float64 `json:"small_serving"`  // size at or below which MaxMultiplier applies
	MaxMultiplier float64 `json:"max_multiplier"` // at SmallServing
	LargeServing  float64 `json:"large_serving"`  // size at or above which MinMultiplier applies
	MinMultiplier float64 `json:"min_multiplier"`
}

// Multiplier returns the risk multiplier for a serving of size grams.
func (c ServingCurve) Multiplier(size float64) float64 {
	if size <= 0 || c.Baseline <= 0 || size == c.Baseline {
		return 1
	}
	if size < c.Baseline {
		if size <= c.SmallServing || c.Baseline <= c.SmallServing {
			return c.MaxMultiplier
		}
		t := (c.Baseline - size) / (c.Baseline - c.SmallServing)
		return 1 + (c.MaxMultiplier-1)*t
	}
	if c.LargeServing <= c.Baseline || size >= c.LargeServing {
		return c.MinMultiplier
	}
	t := (size - c.Baseline) / (c.LargeServing - c.Baseline)
	return 1 - (1-c.MinMultiplier)*t
}

// Threshold is a bound on a per-100 nutrient value. Nil sides are open.
type Threshold struct {
	Nutrient nutrition.Nutrient `json:"nutrient"`
	Above    *float64           `json:"above,omitempty"`
	Below    *float64           `json:"below,omitempty"`
}

// Holds reports whether v satisfies the threshold.
func (t Threshold) Holds(v float64) bool {
	if t.Above != nil && !(v > *t.Above) {
		return false
	}
	if t.Below != nil && !(v < *t.Below) {
		return false
	}
	return true
}

// CombinationPenalty multiplies the score by Factor when every threshold in
// When holds.
type CombinationPenalty struct {
	Code    string      `json:"code"`
	When    []Threshold `json:"when"`
	Factor  float64     `json:"factor"`
	Message string      `json:"message"`
}

// Adjustments are the post-hoc caps, bonuses and penalties. Scores are on
// the 0..100 scale unless stated otherwise.
type Adjustments struct {
	// EmptyFoodPenalty multiplies suitability for foods with calories but
	// no protein and no fiber.
	EmptyFoodPenalty float64 `json:"empty_food_penalty"`

	HealthyFatBonus             float64 `json:"healthy_fat_bonus"`
	HealthyFatMaxSaturatedShare float64 `json:"healthy_fat_max_saturated_share"`
	NaturalSugarBonus           float64 `json:"natural_sugar_bonus"`

	Cooking map[nutrition.CookingMethod]float64 `json:"cooking"`

	WholeBonus                 float64 `json:"whole_bonus"`
	WholeProduceExcellentBonus float64 `json:"whole_produce_excellent_bonus"`
	WholeBonusCap              float64 `json:"whole_bonus_cap"`

	ProcessedCeiling float64 `json:"processed_ceiling"`

	UltraCeiling           float64                        `json:"ultra_ceiling"`
	UltraCategoryCaps      map[nutrition.Category]float64 `json:"ultra_category_caps"`
	SugaryBeverageCap      float64                        `json:"sugary_beverage_cap"`
	SugaryBeverageMinSugar float64                        `json:"sugary_beverage_min_sugar"`
	UltraQuality           map[nutrition.Quality]float64  `json:"ultra_quality"`
	Combinations           []CombinationPenalty           `json:"combinations"`
}

// DiagnosticRule emits a warning or recommendation when every threshold
// holds on the per-100 nutrients and the optional condition/tier filters
// match.
type DiagnosticRule struct {
	Code      string              `json:"code"`
	Kind      Kind                `json:"kind"`
	Severity  Severity            `json:"severity"`
	When      []Threshold         `json:"when,omitempty"`
	Condition nutrition.Condition `json:"condition,omitempty"`
	Tiers     []nutrition.Tier    `json:"tiers,omitempty"`
	Message   string              `json:"message"`
}
