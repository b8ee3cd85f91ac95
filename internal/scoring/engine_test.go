package scoring

import (
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

func f(v float64) *float64 { return nutrition.Float(v) }

func yogurt() nutrition.FoodNutrients {
	return nutrition.FoodNutrients{
		Calories:     f(60),
		TotalFat:     f(3),
		SaturatedFat: f(2),
		Sugar:        f(6),
		Protein:      f(4),
		Sodium:       f(50),
		Fiber:        f(0),
	}
}

var dairy = nutrition.FoodContext{
	ProcessingLevel: nutrition.MinimallyProcessed,
	Category:        nutrition.Dairy,
}

func serving(n nutrition.FoodNutrients, grams float64) nutrition.FoodNutrients {
	out := n.Scaled(grams / 100)
	out.ServingSize = f(grams)
	out.ServingUnit = "g"
	return out
}

func hasCode(ds []Diagnostic, code string) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

func baseline() *Engine {
	return NewEngine(scoremodel.Baseline())
}

func TestScore_EmptyInputIsNeutral(t *testing.T) {
	res := baseline().Score(Request{})

	if res.Score != 50 {
		t.Fatalf("expected neutral score 50, got %v", res.Score)
	}
	if res.Category != "Fair" {
		t.Fatalf("expected Fair, got %q", res.Category)
	}
	if res.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %v", res.Confidence)
	}
	if !hasCode(res.Warnings, "insufficient_data") {
		t.Fatalf("expected insufficient_data warning, got %+v", res.Warnings)
	}
	if !res.Details.Aggregate.Neutral {
		t.Fatalf("expected neutral aggregate")
	}
}

func TestScore_OutputBounds(t *testing.T) {
	e := baseline()
	rng := rand.New(rand.NewSource(42))

	levels := []nutrition.ProcessingLevel{"", nutrition.Whole, nutrition.MinimallyProcessed, nutrition.Processed, nutrition.UltraProcessed, "mystery"}
	cats := []nutrition.Category{"", nutrition.Fruit, nutrition.Vegetable, nutrition.Beverage, nutrition.Snack, nutrition.Dessert, nutrition.FatOil, nutrition.Meal}
	cooking := []nutrition.CookingMethod{"", nutrition.Raw, nutrition.Fried, nutrition.DeepFried}
	quality := []nutrition.Quality{"", nutrition.Excellent, nutrition.Poor, nutrition.VeryPoor}

	maybe := func(hi float64) *float64 {
		if rng.Intn(4) == 0 {
			return nil
		}
		return f(rng.Float64() * hi)
	}

	for i := 0; i < 500; i++ {
		req := Request{
			Nutrients: nutrition.FoodNutrients{
				Calories:      maybe(900),
				TotalFat:      maybe(100),
				SaturatedFat:  maybe(60),
				TransFat:      maybe(5),
				Cholesterol:   maybe(500),
				Sodium:        maybe(5000),
				Carbohydrates: maybe(100),
				Fiber:         maybe(30),
				Sugar:         maybe(100),
				Protein:       maybe(90),
				ServingSize:   maybe(1000),
			},
			Context: nutrition.FoodContext{
				ProcessingLevel: levels[rng.Intn(len(levels))],
				Category:        cats[rng.Intn(len(cats))],
				CookingMethod:   cooking[rng.Intn(len(cooking))],
				Quality:         quality[rng.Intn(len(quality))],
				FatType:         nutrition.HealthyFat,
				SugarType:       nutrition.NaturalSugar,
				IsFortified:     rng.Intn(2) == 0,
			},
			Profile: nutrition.HealthProfile{
				Markers: nutrition.HealthMarkers{
					FastingGlucose: maybe(300),
					LDL:            maybe(300),
					HDL:            maybe(100),
					Systolic:       maybe(200),
					BMI:            maybe(50),
				},
				Conditions: nutrition.Conditions{
					Diabetic:     rng.Intn(2) == 0,
					HighLipid:    rng.Intn(2) == 0,
					Hypertension: rng.Intn(2) == 0,
				},
			},
		}
		if rng.Intn(2) == 0 {
			req.Mode = PortionAware
		}

		res := e.Score(req)
		if math.IsNaN(res.Score) || res.Score < 0 || res.Score > 100 {
			t.Fatalf("case %d: score %v out of range", i, res.Score)
		}
		if res.Suitability < 0 || res.Suitability > 1 {
			t.Fatalf("case %d: suitability %v out of range", i, res.Suitability)
		}
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("case %d: confidence %v out of range", i, res.Confidence)
		}
		if w := res.Details.ComponentWeights; len(w) > 0 {
			sum := 0.0
			for _, v := range w {
				sum += v
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Fatalf("case %d: weights sum to %v", i, sum)
			}
		}
	}
}

func TestScore_PerHundredIgnoresServingSize(t *testing.T) {
	e := baseline()
	ref := e.Score(Request{Nutrients: yogurt(), Context: dairy})

	for _, g := range []float64{15, 30, 100, 250, 400} {
		res := e.Score(Request{Nutrients: serving(yogurt(), g), Context: dairy})
		if math.Abs(res.Score-ref.Score) > 1e-9 {
			t.Fatalf("serving %vg: expected %v, got %v", g, ref.Score, res.Score)
		}
	}
}

func TestScore_PortionAwarePenalisesSmallServings(t *testing.T) {
	e := baseline()
	ref := e.Score(Request{Nutrients: yogurt(), Context: dairy})

	small := e.Score(Request{Nutrients: serving(yogurt(), 30), Context: dairy, Mode: PortionAware})
	large := e.Score(Request{Nutrients: serving(yogurt(), 300), Context: dairy, Mode: PortionAware})
	exact := e.Score(Request{Nutrients: serving(yogurt(), 100), Context: dairy, Mode: PortionAware})

	if !(small.Score < ref.Score) {
		t.Fatalf("expected 30g (%v) below per-100 (%v)", small.Score, ref.Score)
	}
	if !(large.Score > ref.Score) {
		t.Fatalf("expected 300g (%v) above per-100 (%v)", large.Score, ref.Score)
	}
	if math.Abs(exact.Score-ref.Score) > 1e-9 {
		t.Fatalf("expected 100g portion-aware to match per-100, got %v vs %v", exact.Score, ref.Score)
	}
	if !hasCode(small.Recommendations, "mind_portion") {
		t.Fatalf("expected mind_portion recommendation on small serving")
	}
	if small.Mode != PortionAware || ref.Mode != PerHundred {
		t.Fatalf("unexpected modes %q / %q", small.Mode, ref.Mode)
	}
}

func TestScore_Monotonicity(t *testing.T) {
	e := baseline()

	cases := []struct {
		name       string
		set        func(*nutrition.FoodNutrients, float64)
		values     []float64
		increasing bool
	}{
		{"sugar", func(n *nutrition.FoodNutrients, v float64) { n.Sugar = f(v) }, []float64{0, 2, 5, 8, 12, 20, 30, 40, 60, 80}, false},
		{"saturated_fat", func(n *nutrition.FoodNutrients, v float64) { n.SaturatedFat = f(v) }, []float64{0, 1, 3, 6, 12, 20, 35, 60}, false},
		{"sodium", func(n *nutrition.FoodNutrients, v float64) { n.Sodium = f(v) }, []float64{0, 100, 250, 500, 1000, 1500, 3000, 6000}, false},
		{"fiber", func(n *nutrition.FoodNutrients, v float64) { n.Fiber = f(v) }, []float64{0, 0.5, 1.5, 2.5, 5}, true},
		{"protein", func(n *nutrition.FoodNutrients, v float64) { n.Protein = f(v) }, []float64{0.5, 1, 3, 8, 15}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := math.NaN()
			for _, v := range tc.values {
				n := yogurt()
				tc.set(&n, v)
				got := e.Score(Request{Nutrients: n, Context: dairy}).Score
				if !math.IsNaN(prev) {
					if tc.increasing && !(got > prev) {
						t.Fatalf("%s=%v: expected score above %v, got %v", tc.name, v, prev, got)
					}
					if !tc.increasing && !(got < prev) {
						t.Fatalf("%s=%v: expected score below %v, got %v", tc.name, v, prev, got)
					}
				}
				prev = got
			}
		})
	}
}

func TestScore_SugarMonotoneWithMarkers(t *testing.T) {
	e := baseline()
	p := nutrition.HealthProfile{
		Markers:    nutrition.HealthMarkers{FastingGlucose: f(110)},
		Conditions: nutrition.Conditions{Diabetic: true},
	}

	prev := math.Inf(1)
	for _, v := range []float64{0, 1, 3, 6, 10, 15, 20, 25, 30} {
		n := yogurt()
		n.Sugar = f(v)
		got := e.Score(Request{Nutrients: n, Context: dairy, Profile: p}).Score
		if !(got < prev) {
			t.Fatalf("sugar=%v: expected score below %v, got %v", v, prev, got)
		}
		prev = got
	}
}

func TestScore_HarmfulNutrientsPastLastCeiling(t *testing.T) {
	e := baseline()
	condiment := nutrition.FoodContext{
		ProcessingLevel: nutrition.MinimallyProcessed,
		Category:        nutrition.Condiment,
	}
	base := func() nutrition.FoodNutrients {
		return nutrition.FoodNutrients{
			Calories: f(250),
			Sugar:    f(10),
			Sodium:   f(900),
			Protein:  f(1),
			Fiber:    f(0.5),
		}
	}
	diabetic := nutrition.HealthProfile{Conditions: nutrition.Conditions{Diabetic: true}}

	cases := []struct {
		name    string
		set     func(*nutrition.FoodNutrients, float64)
		profile nutrition.HealthProfile
		values  []float64
	}{
		{"sugar", func(n *nutrition.FoodNutrients, v float64) { n.Sugar = f(v) }, nutrition.HealthProfile{}, []float64{40, 60, 80}},
		{"sodium", func(n *nutrition.FoodNutrients, v float64) { n.Sodium = f(v) }, nutrition.HealthProfile{}, []float64{1500, 3000, 6000}},
		{"diabetic sugar", func(n *nutrition.FoodNutrients, v float64) { n.Sugar = f(v) }, diabetic, []float64{20, 25, 35}},
		{"calories", func(n *nutrition.FoodNutrients, v float64) { n.Calories = f(v) }, nutrition.HealthProfile{}, []float64{600, 750, 900}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := math.Inf(1)
			for _, v := range tc.values {
				n := base()
				tc.set(&n, v)
				res := e.Score(Request{Nutrients: n, Context: condiment, Profile: tc.profile})
				if res.Tier != nutrition.TierCulinary {
					t.Fatalf("expected tier 2, got %v", res.Tier)
				}
				if !(res.Score < prev) {
					t.Fatalf("%s=%v: expected score below %v, got %v", tc.name, v, prev, res.Score)
				}
				prev = res.Score
			}
		})
	}
}

func TestScore_ConfidenceIsMarkerCoverage(t *testing.T) {
	m := scoremodel.Baseline()
	e := NewEngine(m)

	p := nutrition.HealthProfile{Markers: nutrition.HealthMarkers{
		FastingGlucose: f(100), HbA1c: f(5.6), LDL: f(120), HDL: f(50),
		Triglycerides: f(140), ALT: f(25), AST: f(22),
	}}
	res := e.Score(Request{Nutrients: yogurt(), Context: dairy, Profile: p})

	want := 7.0 / float64(len(m.ConfiguredMarkers()))
	if res.Confidence != want {
		t.Fatalf("expected confidence %v, got %v", want, res.Confidence)
	}
	if len(res.Details.MissingMarkers) != len(m.ConfiguredMarkers())-7 {
		t.Fatalf("unexpected missing markers %v", res.Details.MissingMarkers)
	}
}

func TestScore_UltraProcessedCategoryCaps(t *testing.T) {
	e := baseline()
	bar := nutrition.FoodNutrients{
		Calories: f(350), Protein: f(30), Fiber: f(12), Sugar: f(2),
		SaturatedFat: f(1), Sodium: f(100),
	}

	cases := []struct {
		cat nutrition.Category
		cap float64
	}{
		{nutrition.Snack, 10},
		{nutrition.Dessert, 25},
		{nutrition.FastFood, 15},
		{nutrition.Grain, 40},
	}
	for _, tc := range cases {
		ctx := nutrition.FoodContext{ProcessingLevel: nutrition.UltraProcessed, Category: tc.cat}
		res := e.Score(Request{Nutrients: bar, Context: ctx})
		if res.Score > tc.cap {
			t.Fatalf("%s: expected score at most %v, got %v", tc.cat, tc.cap, res.Score)
		}
		if res.Tier != nutrition.TierUltra {
			t.Fatalf("%s: expected ultra tier, got %v", tc.cat, res.Tier)
		}
		if !hasCode(res.Warnings, "ultra_processed") {
			t.Fatalf("%s: expected ultra_processed warning", tc.cat)
		}
	}
}

func TestScore_Scenarios(t *testing.T) {
	e := baseline()

	spinach := e.Score(Request{
		Nutrients: nutrition.FoodNutrients{
			Calories: f(23), TotalFat: f(0.4), SaturatedFat: f(0.06), TransFat: f(0),
			Cholesterol: f(0), Sodium: f(79), Carbohydrates: f(3.6), Fiber: f(2.2),
			Sugar: f(0.4), Protein: f(2.9),
		},
		Context: nutrition.FoodContext{ProcessingLevel: nutrition.Whole, Category: nutrition.Vegetable},
	})
	if spinach.Score < 90 {
		t.Fatalf("spinach: expected at least 90, got %v", spinach.Score)
	}

	chicken := e.Score(Request{
		Nutrients: nutrition.FoodNutrients{
			Calories: f(165), TotalFat: f(3.6), SaturatedFat: f(1), TransFat: f(0),
			Cholesterol: f(85), Sodium: f(74), Carbohydrates: f(0), Fiber: f(0),
			Sugar: f(0), Protein: f(31),
		},
		Context: nutrition.FoodContext{ProcessingLevel: nutrition.Whole, Category: nutrition.ProteinFood},
	})
	if chicken.Score < 85 {
		t.Fatalf("chicken breast: expected at least 85, got %v", chicken.Score)
	}
	if !hasCode(chicken.Recommendations, "good_protein_source") {
		t.Fatalf("chicken breast: expected good_protein_source")
	}

	diabetic := nutrition.HealthProfile{
		Markers:    nutrition.HealthMarkers{FastingGlucose: f(140)},
		Conditions: nutrition.Conditions{Diabetic: true},
	}
	soda := e.Score(Request{
		Nutrients: nutrition.FoodNutrients{
			Calories: f(42), Sugar: f(10.6), Carbohydrates: f(10.6), Protein: f(0),
			Fiber: f(0), Sodium: f(10), SaturatedFat: f(0), TotalFat: f(0),
		},
		Context: nutrition.FoodContext{ProcessingLevel: nutrition.UltraProcessed, Category: nutrition.Beverage},
		Profile: diabetic,
	})
	if soda.Score > 15 {
		t.Fatalf("soda for diabetic: expected at most 15, got %v", soda.Score)
	}
	if !hasCode(soda.Warnings, "high_sugar") {
		t.Fatalf("soda for diabetic: expected high_sugar warning")
	}
	if !hasCode(soda.Warnings, "raises_fasting_glucose") {
		t.Fatalf("soda for diabetic: expected raises_fasting_glucose, got %+v", soda.Warnings)
	}
}

func TestScore_LargeSoupBeatsSmallButter(t *testing.T) {
	e := baseline()
	lipid := nutrition.HealthProfile{
		Markers:    nutrition.HealthMarkers{LDL: f(190)},
		Conditions: nutrition.Conditions{HighLipid: true},
	}

	butter := nutrition.FoodNutrients{
		Calories: f(100), TotalFat: f(11.4), SaturatedFat: f(7.2), TransFat: f(0.5),
		Cholesterol: f(30), Sodium: f(91), Protein: f(0.1),
		ServingSize: f(14), ServingUnit: "g",
	}
	soup := nutrition.FoodNutrients{
		Calories: f(375), TotalFat: f(12.5), SaturatedFat: f(10), Cholesterol: f(25),
		Sodium: f(2000), Carbohydrates: f(50), Fiber: f(10), Sugar: f(15), Protein: f(15),
		ServingSize: f(500), ServingUnit: "g",
	}

	for _, mode := range []Mode{PerHundred, PortionAware} {
		b := e.Score(Request{
			Nutrients: butter,
			Context:   nutrition.FoodContext{ProcessingLevel: nutrition.MinimallyProcessed, Category: nutrition.FatOil},
			Profile:   lipid,
			Mode:      mode,
		})
		s := e.Score(Request{
			Nutrients: soup,
			Context:   nutrition.FoodContext{ProcessingLevel: nutrition.MinimallyProcessed, Category: nutrition.Meal},
			Profile:   lipid,
			Mode:      mode,
		})
		if !(s.Score > b.Score) {
			t.Fatalf("%s: expected soup (%v) above butter (%v)", mode, s.Score, b.Score)
		}
		if b.Score > 10 {
			t.Fatalf("%s: expected butter near the bottom, got %v", mode, b.Score)
		}
	}
}

func TestScore_DoesNotMutateModel(t *testing.T) {
	m := scoremodel.Baseline()
	e := NewEngine(m)

	e.Score(Request{
		Nutrients: serving(yogurt(), 250),
		Context:   nutrition.FoodContext{ProcessingLevel: nutrition.UltraProcessed, Category: nutrition.Snack, CookingMethod: nutrition.Fried},
		Profile: nutrition.HealthProfile{
			Markers:    nutrition.HealthMarkers{LDL: f(170), BMI: f(33)},
			Conditions: nutrition.Conditions{HighLipid: true, BMIClass: nutrition.BMIObese},
		},
		Mode: PortionAware,
	})

	if !reflect.DeepEqual(m, scoremodel.Baseline()) {
		t.Fatalf("scoring modified the model")
	}
}

func TestScore_ConcurrentCallsAgree(t *testing.T) {
	e := baseline()
	req := Request{
		Nutrients: serving(yogurt(), 170),
		Context:   dairy,
		Profile: nutrition.HealthProfile{
			Markers: nutrition.HealthMarkers{FastingGlucose: f(118), LDL: f(150), Systolic: f(135)},
		},
		Mode: PortionAware,
	}
	want := e.Score(req)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Score(req)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("goroutine %d produced a different result", i)
		}
	}
}

func TestScoreBatch_PreservesOrder(t *testing.T) {
	e := baseline()

	var reqs []Request
	for _, sugar := range []float64{0, 4, 9, 14, 22, 35, 50} {
		n := yogurt()
		n.Sugar = f(sugar)
		reqs = append(reqs, Request{Nutrients: n, Context: dairy})
	}

	got := e.ScoreBatch(reqs)
	if len(got) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(got))
	}
	for i, r := range reqs {
		if want := e.Score(r); got[i].Score != want.Score {
			t.Fatalf("result %d: expected %v, got %v", i, want.Score, got[i].Score)
		}
	}

	if out := e.ScoreBatch(nil); len(out) != 0 {
		t.Fatalf("expected no results for an empty batch")
	}
}

func TestScore_ModelsDifferForDiabeticSugar(t *testing.T) {
	n := yogurt()
	n.Sugar = f(7)
	req := Request{
		Nutrients: n,
		Context:   dairy,
		Profile:   nutrition.HealthProfile{Conditions: nutrition.Conditions{Diabetic: true}},
	}

	a := NewEngine(scoremodel.Baseline()).Score(req)
	b := NewEngine(scoremodel.NovaV2()).Score(req)

	if a.Score == b.Score {
		t.Fatalf("expected the two models to disagree, both gave %v", a.Score)
	}
	if a.Model != scoremodel.BaselineName || b.Model != scoremodel.NovaName {
		t.Fatalf("unexpected model names %q / %q", a.Model, b.Model)
	}
	if a.ModelVersion == "" || b.ModelVersion == "" {
		t.Fatalf("expected model versions in the result")
	}

	// Without the condition both models use the same ladder.
	req.Profile = nutrition.HealthProfile{}
	if x, y := NewEngine(scoremodel.Baseline()).Score(req), NewEngine(scoremodel.NovaV2()).Score(req); x.Score != y.Score {
		t.Fatalf("expected identical scores without diabetes, got %v / %v", x.Score, y.Score)
	}
}

func TestScore_EmptyFoodPenalty(t *testing.T) {
	e := baseline()
	candy := nutrition.FoodNutrients{Calories: f(200), Sugar: f(12), Protein: f(0), Fiber: f(0)}

	res := e.Score(Request{Nutrients: candy, Context: nutrition.FoodContext{ProcessingLevel: nutrition.MinimallyProcessed}})
	if !res.Details.EmptyFood {
		t.Fatalf("expected food to be flagged empty")
	}
	if !hasCode(res.Warnings, "nutritionally_empty") {
		t.Fatalf("expected nutritionally_empty warning")
	}

	water := nutrition.FoodNutrients{Calories: f(0), Protein: f(0), Fiber: f(0)}
	if EmptyFood(water) {
		t.Fatalf("zero-calorie food should not be empty")
	}
	if EmptyFood(nutrition.FoodNutrients{Calories: f(200)}) {
		t.Fatalf("unreported protein and fiber should not mark a food empty")
	}
}

func TestScore_DiagnosticsCarryStages(t *testing.T) {
	res := baseline().Score(Request{
		Nutrients: nutrition.FoodNutrients{Calories: f(500), Sugar: f(35), SaturatedFat: f(9), Protein: f(5), ServingSize: f(2), ServingUnit: "bowls"},
		Context:   nutrition.FoodContext{ProcessingLevel: "weird", CookingMethod: nutrition.DeepFried},
	})

	stages := map[string]Stage{
		"serving_unit_unrecognized": StageServing,
		"processing_level_assumed":  StageProcessing,
		"deep_fried":                StageAdjust,
		"high_sugar":                StageRules,
		"add_health_markers":        StageNormalize,
	}
	for code, stage := range stages {
		found := false
		for _, d := range res.Diagnostics {
			if d.Code == code {
				found = true
				if d.Stage != stage {
					t.Fatalf("%s: expected stage %q, got %q", code, stage, d.Stage)
				}
			}
		}
		if !found {
			t.Fatalf("expected diagnostic %s in %+v", code, res.Diagnostics)
		}
	}
	if len(res.Warnings)+len(res.Recommendations) > len(res.Diagnostics) {
		t.Fatalf("warnings and recommendations must be drawn from diagnostics")
	}
}
