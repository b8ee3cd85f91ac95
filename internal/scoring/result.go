package scoring

import (
	"math"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// Result is the response contract for one scored food. Every field is
// populated even when most inputs are missing.
type Result struct {
	Score           float64        `json:"score"`
	Suitability     float64        `json:"suitability"`
	Category        string         `json:"category"`
	Confidence      float64        `json:"confidence"`
	Tier            nutrition.Tier `json:"tier"`
	Mode            Mode           `json:"mode"`
	Model           string         `json:"model"`
	ModelVersion    string         `json:"model_version"`
	Warnings        []Diagnostic   `json:"warnings"`
	Recommendations []Diagnostic   `json:"recommendations"`
	Diagnostics     []Diagnostic   `json:"diagnostics"`
	Details         Details        `json:"details"`
}

// Details is the explainable breakdown behind a Result.
type Details struct {
	Conditions          nutrition.Conditions                    `json:"conditions"`
	Serving             Serving                                 `json:"serving"`
	NutrientsPer100     map[nutrition.Nutrient]float64          `json:"nutrients_per_100"`
	NutrientLevels      map[nutrition.Nutrient]float64          `json:"nutrient_levels"`
	MarkerLevels        map[nutrition.Marker]float64            `json:"marker_levels"`
	MarkerImpacts       map[nutrition.Marker]float64            `json:"marker_impacts"`
	MarkerContributions map[nutrition.Marker]MarkerContribution `json:"marker_contributions"`
	ComponentScores     map[scoremodel.Component]float64        `json:"component_scores"`
	ComponentWeights    map[scoremodel.Component]float64        `json:"component_weights"`
	WeightRules         []string                                `json:"weight_rules"`
	Aggregate           Aggregate                               `json:"aggregate"`
	EmptyFood           bool                                    `json:"empty_food"`
	BaseScore           float64                                 `json:"base_score"`
	Adjustments         []AppliedAdjustment                     `json:"adjustments"`
	MissingMarkers      []nutrition.Marker                      `json:"missing_markers"`
	MissingNutrients    []nutrition.Nutrient                    `json:"missing_nutrients"`
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
