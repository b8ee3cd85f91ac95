package scoremodel

import "github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"

const (
	BaselineName = "baseline-v1"
	NovaName     = "nova-v2"
)

// Builtin returns fresh copies of the models shipped with the binary.
func Builtin() []*Model {
	return []*Model{Baseline(), NovaV2()}
}

// Baseline builds the default scoring model. Every call returns a new value
// so callers can derive variants without touching a shared instance.
func Baseline() *Model {
	return &Model{
		Name:        BaselineName,
		Version:     "1.0.0",
		Description: "Marker-weighted suitability with NOVA tier caps.",

		MarkerBounds: map[nutrition.Marker]Bounds{
			nutrition.FastingGlucose: {Low: 90, High: 126},
			nutrition.HbA1c:          {Low: 5.4, High: 6.5},
			nutrition.LDL:            {Low: 100, High: 190},
			nutrition.HDL:            {Low: 60, High: 35},
			nutrition.Triglycerides:  {Low: 150, High: 500},
			nutrition.ALT:            {Low: 30, High: 100},
			nutrition.AST:            {Low: 30, High: 100},
			nutrition.Creatinine:     {Low: 1.0, High: 2.0},
			nutrition.CRP:            {Low: 1, High: 10},
			nutrition.BMI:            {Low: 22, High: 35},
			nutrition.Waist:          {Low: 80, High: 110},
			nutrition.Systolic:       {Low: 120, High: 160},
			nutrition.Diastolic:      {Low: 80, High: 100},
			nutrition.Age:            {Low: 30, High: 80},
		},
		NutrientBounds: map[nutrition.Nutrient]Bounds{
			nutrition.Calories:      {Low: 0, High: 600},
			nutrition.TotalFat:      {Low: 0, High: 40},
			nutrition.SaturatedFat:  {Low: 0, High: 20},
			nutrition.TransFat:      {Low: 0, High: 2},
			nutrition.Cholesterol:   {Low: 0, High: 300},
			nutrition.Sodium:        {Low: 0, High: 1500},
			nutrition.Carbohydrates: {Low: 0, High: 80},
			nutrition.Fiber:         {Low: 0, High: 10},
			nutrition.Sugar:         {Low: 0, High: 40},
			nutrition.Protein:       {Low: 0, High: 30},
		},
		Coefficients: map[nutrition.Nutrient]map[nutrition.Marker]float64{
			nutrition.Sugar: {
				nutrition.FastingGlucose: 0.8, nutrition.HbA1c: 0.6, nutrition.Triglycerides: 0.5,
				nutrition.ALT: 0.3, nutrition.BMI: 0.3, nutrition.Waist: 0.3, nutrition.CRP: 0.2,
			},
			nutrition.Carbohydrates: {
				nutrition.FastingGlucose: 0.4, nutrition.HbA1c: 0.3, nutrition.Triglycerides: 0.2,
			},
			nutrition.Fiber: {
				nutrition.FastingGlucose: -0.4, nutrition.HbA1c: -0.3, nutrition.LDL: -0.3,
				nutrition.Triglycerides: -0.2, nutrition.CRP: -0.2, nutrition.Waist: -0.1,
			},
			nutrition.SaturatedFat: {
				nutrition.LDL: 0.8, nutrition.HDL: 0.1, nutrition.Triglycerides: 0.3,
				nutrition.CRP: 0.2, nutrition.ALT: 0.2,
			},
			nutrition.TransFat: {
				nutrition.LDL: 0.6, nutrition.HDL: 0.5, nutrition.CRP: 0.3,
			},
			nutrition.Cholesterol: {
				nutrition.LDL: 0.3,
			},
			nutrition.Sodium: {
				nutrition.Systolic: 0.8, nutrition.Diastolic: 0.6, nutrition.Creatinine: 0.4,
			},
			nutrition.Calories: {
				nutrition.BMI: 0.5, nutrition.Waist: 0.4, nutrition.Triglycerides: 0.2,
				nutrition.FastingGlucose: 0.1,
			},
			nutrition.TotalFat: {
				nutrition.BMI: 0.2, nutrition.Waist: 0.1,
			},
			nutrition.Protein: {
				nutrition.FastingGlucose: -0.1, nutrition.BMI: -0.05,
			},
		},
		MarkerWeights: map[nutrition.Marker]float64{
			nutrition.FastingGlucose: 1.0,
			nutrition.HbA1c:          1.0,
			nutrition.LDL:            1.0,
			nutrition.HDL:            0.6,
			nutrition.Triglycerides:  0.8,
			nutrition.ALT:            0.5,
			nutrition.AST:            0.3,
			nutrition.Creatinine:     0.6,
			nutrition.CRP:            0.5,
			nutrition.BMI:            0.8,
			nutrition.Waist:          0.6,
			nutrition.Systolic:       1.0,
			nutrition.Diastolic:      0.7,
			nutrition.Age:            0.3,
		},
		Gamma:              0.5,
		MarkerInfluence:    1.0,
		NeutralSuitability: 0.5,

		Weights: WeightTable{
			Default: map[Component]float64{
				SugarComponent: 1, SaturatedFatComponent: 1, TransFatComponent: 1, SodiumComponent: 1,
				CaloriesComponent: 1, ProteinComponent: 1, FiberComponent: 1, MicronutrientsComponent: 1,
			},
			Rules: []WeightRule{
				{
					Name: "whole-food-nutrient-density",
					Tier: nutrition.TierWhole,
					Factors: map[Component]float64{
						FiberComponent: 2, MicronutrientsComponent: 2, ProteinComponent: 1.5,
					},
				},
				{
					Name:       "whole-produce-natural-sugar",
					Tier:       nutrition.TierWhole,
					Categories: []nutrition.Category{nutrition.Fruit, nutrition.Vegetable},
					Factors: map[Component]float64{
						SugarComponent: 0.05, CaloriesComponent: 0.05,
					},
				},
				{
					Name: "processed",
					Tier: nutrition.TierProcessed,
					Factors: map[Component]float64{
						SugarComponent: 1.3, SaturatedFatComponent: 1.3, TransFatComponent: 1.3, SodiumComponent: 1.5,
					},
				},
				{
					Name: "ultra-processed",
					Tier: nutrition.TierUltra,
					Factors: map[Component]float64{
						SugarComponent: 3, SaturatedFatComponent: 2.5, TransFatComponent: 3, SodiumComponent: 2.5,
						ProteinComponent: 0.1, FiberComponent: 0.1, MicronutrientsComponent: 0.1,
					},
				},
				{
					Name:       "no-fiber-expected",
					Categories: []nutrition.Category{nutrition.ProteinFood, nutrition.Dairy},
					Factors:    map[Component]float64{FiberComponent: 0.05},
				},
				{
					Name:       "no-protein-or-fiber-expected",
					Categories: []nutrition.Category{nutrition.Beverage, nutrition.FatOil},
					Factors:    map[Component]float64{ProteinComponent: 0.05, FiberComponent: 0.05},
				},
				{
					Name:      "diabetic-sugar",
					Condition: nutrition.Diabetic,
					Factors:   map[Component]float64{SugarComponent: 2.5},
				},
				{
					Name:      "high-lipid-fats",
					Condition: nutrition.HighLipid,
					Factors:   map[Component]float64{SaturatedFatComponent: 2.0, TransFatComponent: 2.0},
				},
				{
					Name:      "hypertension-sodium",
					Condition: nutrition.Hypertension,
					Factors:   map[Component]float64{SodiumComponent: 2.5},
				},
			},
			BMICalorieFactor: map[nutrition.BMIClass]float64{
				nutrition.BMIUnderweight: 0.5,
				nutrition.BMINormal:      1.0,
				nutrition.BMIOverweight:  1.5,
				nutrition.BMIObese:       2.0,
			},
		},

		Ladders: LadderSet{
			Components: map[Component]Ladder{
				SugarComponent:        {{0, 100}, {5, 80}, {10, 50}, {22.5, 20}, {40, 2}},
				SaturatedFatComponent: {{0, 100}, {1.5, 80}, {5, 40}, {10, 15}, {20, 2}},
				TransFatComponent:     {{0, 100}, {0.2, 60}, {0.5, 30}, {2, 2}},
				SodiumComponent:       {{0, 100}, {120, 85}, {300, 60}, {600, 30}, {1500, 2}},
				CaloriesComponent:     {{0, 100}, {40, 90}, {150, 70}, {275, 40}, {400, 15}, {600, 2}},
				ProteinComponent:      {{0, 20}, {2, 50}, {5, 75}, {10, 90}, {20, 100}},
				FiberComponent:        {{0, 20}, {1, 50}, {2, 75}, {3, 90}, {6, 100}},
			},
			ConditionOverrides: map[nutrition.Condition]map[Component]Ladder{
				nutrition.Diabetic: {
					SugarComponent: {{0, 100}, {2.5, 70}, {5, 40}, {10, 10}, {20, 2}},
				},
				nutrition.HighLipid: {
					SaturatedFatComponent: {{0, 100}, {1, 75}, {3, 40}, {6, 10}, {12, 2}},
				},
				nutrition.Hypertension: {
					SodiumComponent: {{0, 100}, {80, 80}, {200, 50}, {400, 20}, {1000, 2}},
				},
			},
		},

		Micronutrients: MicronutrientTable{
			Categories: map[nutrition.Category]float64{
				nutrition.Vegetable:   95,
				nutrition.Fruit:       85,
				nutrition.Legume:      85,
				nutrition.NutsSeeds:   80,
				nutrition.Grain:       70,
				nutrition.Dairy:       65,
				nutrition.ProteinFood: 65,
				nutrition.Meal:        50,
				nutrition.FatOil:      30,
				nutrition.FastFood:    25,
				nutrition.Beverage:    20,
				nutrition.Snack:       20,
				nutrition.Condiment:   20,
				nutrition.Dessert:     15,
			},
			FortifiedBonus: 10,
		},

		Serving: ServingCurve{
			Baseline:      100,
			SmallServing:  10,
			MaxMultiplier: 1.15,
			LargeServing:  500,
			MinMultiplier: 0.95,
		},

		Adjustments: Adjustments{
			EmptyFoodPenalty:            0.75,
			HealthyFatBonus:             1.05,
			HealthyFatMaxSaturatedShare: 0.33,
			NaturalSugarBonus:           1.03,
			Cooking: map[nutrition.CookingMethod]float64{
				nutrition.Fried:     0.9,
				nutrition.DeepFried: 0.8,
			},
			WholeBonus:                 1.10,
			WholeProduceExcellentBonus: 1.12,
			WholeBonusCap:              95,
			ProcessedCeiling:           60,
			UltraCeiling:               40,
			UltraCategoryCaps: map[nutrition.Category]float64{
				nutrition.Snack:    10,
				nutrition.Dessert:  25,
				nutrition.FastFood: 15,
				nutrition.Meal:     15,
			},
			SugaryBeverageCap:      15,
			SugaryBeverageMinSugar: 2.5,
			UltraQuality: map[nutrition.Quality]float64{
				nutrition.VeryPoor: 0.6,
				nutrition.Poor:     0.8,
			},
			Combinations: []CombinationPenalty{
				{
					Code:    "toxic_combination",
					When:    []Threshold{above(nutrition.Sugar, 30), above(nutrition.SaturatedFat, 5)},
					Factor:  0.7,
					Message: "High sugar combined with high saturated fat.",
				},
				{
					Code:    "sodium_bomb",
					When:    []Threshold{above(nutrition.Sodium, 1500)},
					Factor:  0.7,
					Message: "Extremely high sodium.",
				},
			},
		},

		Diagnostics: []DiagnosticRule{
			{Code: "high_sugar", Kind: Warning, Severity: SeverityHigh, Condition: nutrition.Diabetic,
				When:    []Threshold{above(nutrition.Sugar, 5)},
				Message: "High sugar for a diabetic profile."},
			{Code: "high_sugar", Kind: Warning, Severity: SeverityHigh,
				When:    []Threshold{above(nutrition.Sugar, 10)},
				Message: "High sugar content."},
			{Code: "high_saturated_fat", Kind: Warning, Severity: SeverityHigh, Condition: nutrition.HighLipid,
				When:    []Threshold{above(nutrition.SaturatedFat, 2.5)},
				Message: "High saturated fat for an elevated-cholesterol profile."},
			{Code: "high_saturated_fat", Kind: Warning, Severity: SeverityHigh,
				When:    []Threshold{above(nutrition.SaturatedFat, 5)},
				Message: "High saturated fat content."},
			{Code: "trans_fat_present", Kind: Warning, Severity: SeverityHigh,
				When:    []Threshold{above(nutrition.TransFat, 0.5)},
				Message: "Contains trans fat; keep intake as low as possible."},
			{Code: "trans_fat_present", Kind: Warning, Severity: SeverityCaution,
				When:    []Threshold{above(nutrition.TransFat, 0)},
				Message: "Contains trans fat; keep intake as low as possible."},
			{Code: "high_sodium", Kind: Warning, Severity: SeverityHigh, Condition: nutrition.Hypertension,
				When:    []Threshold{above(nutrition.Sodium, 400)},
				Message: "High sodium for a high blood pressure profile."},
			{Code: "high_sodium", Kind: Warning, Severity: SeverityCaution,
				When:    []Threshold{above(nutrition.Sodium, 600)},
				Message: "High sodium content."},
			{Code: "high_cholesterol", Kind: Warning, Severity: SeverityCaution, Condition: nutrition.HighLipid,
				When:    []Threshold{above(nutrition.Cholesterol, 100)},
				Message: "High dietary cholesterol for an elevated-cholesterol profile."},
			{Code: "high_calories", Kind: Warning, Severity: SeverityCaution,
				When:    []Threshold{above(nutrition.Calories, 400)},
				Message: "Very energy-dense food."},
			{Code: "ultra_processed", Kind: Warning, Severity: SeverityCaution,
				Tiers:   []nutrition.Tier{nutrition.TierUltra},
				Message: "Ultra-processed food."},
			{Code: "limit_portion_for_glucose", Kind: Recommendation, Severity: SeverityInfo, Condition: nutrition.Diabetic,
				When:    []Threshold{above(nutrition.Sugar, 5)},
				Message: "Keep the portion small and pair it with protein or fiber to blunt the glucose response."},
			{Code: "pair_with_fiber", Kind: Recommendation, Severity: SeverityInfo,
				When:    []Threshold{above(nutrition.Sugar, 10), below(nutrition.Fiber, 1.5)},
				Message: "Pair with a fiber-rich food or choose a higher-fiber alternative."},
			{Code: "choose_lower_sodium", Kind: Recommendation, Severity: SeverityInfo,
				When:    []Threshold{above(nutrition.Sodium, 600)},
				Message: "Look for a lower-sodium version or reduce added salt."},
			{Code: "choose_whole_foods", Kind: Recommendation, Severity: SeverityInfo,
				Tiers:   []nutrition.Tier{nutrition.TierUltra},
				Message: "Swap for a whole or minimally processed alternative."},
			{Code: "good_protein_source", Kind: Recommendation, Severity: SeverityInfo,
				When:    []Threshold{above(nutrition.Protein, 15)},
				Message: "Good source of protein."},
			{Code: "good_fiber_source", Kind: Recommendation, Severity: SeverityInfo,
				When:    []Threshold{above(nutrition.Fiber, 6)},
				Message: "Good source of fiber."},
		},

		Labels: []LabelStep{
			{Floor: 80, Label: "Excellent"},
			{Floor: 60, Label: "Good"},
			{Floor: 40, Label: "Fair"},
			{Floor: 20, Label: "Poor"},
			{Floor: 0, Label: "Very Poor"},
		},
	}
}

// NovaV2 is the NOVA-weighted calibration. It shares the baseline tables but
// uses its own diabetic sugar ladder, so the same food can score differently
// for a diabetic profile under the two models.
func NovaV2() *Model {
	m := Baseline()
	m.Name = NovaName
	m.Version = "2.0.0"
	m.Description = "NOVA-weighted calibration with a gentler diabetic sugar curve."
	m.Ladders.ConditionOverrides[nutrition.Diabetic] = map[Component]Ladder{
		SugarComponent: {{0, 100}, {5, 60}, {10, 25}, {15, 5}, {25, 2}},
	}
	return m
}

func above(n nutrition.Nutrient, v float64) Threshold {
	return Threshold{Nutrient: n, Above: nutrition.Float(v)}
}

func below(n nutrition.Nutrient, v float64) Threshold {
	return Threshold{Nutrient: n, Below: nutrition.Float(v)}
}
