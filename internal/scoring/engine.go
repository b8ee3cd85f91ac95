package scoring

import (
	"runtime"
	"sync"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// Request is everything needed to score one food for one person.
type Request struct {
	Nutrients nutrition.FoodNutrients `json:"nutrients"`
	Context   nutrition.FoodContext   `json:"context"`
	Profile   nutrition.HealthProfile `json:"profile"`
	Mode      Mode                    `json:"mode,omitempty"`
}

// Engine runs the scoring pipeline against one model. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	model *scoremodel.Model
}

// NewEngine binds an engine to a model. The model must not be modified
// afterwards.
func NewEngine(m *scoremodel.Model) *Engine {
	return &Engine{model: m}
}

func (e *Engine) Model() *scoremodel.Model {
	return e.model
}

// Score runs the pipeline. It never fails: missing data lowers confidence
// and is reported through diagnostics.
func (e *Engine) Score(req Request) Result {
	m := e.model
	mode := req.Mode
	if mode != PortionAware {
		mode = PerHundred
	}
	conds := req.Profile.Conditions

	per100, serving, servingDiags := NormalizeServing(req.Nutrients)
	ctx := req.Context.Normalized()
	tier, tierDiags := ClassifyProcessing(ctx)

	markers := NormalizeMarkers(m, req.Profile.Markers)
	nutrients := NormalizeNutrients(m, per100)
	impact := PropagateImpact(m, nutrients.Values)

	scores := map[scoremodel.Component]float64{}
	weights := map[scoremodel.Component]float64{}
	weightRules := []string{}
	dataDiags := []Diagnostic{}
	if per100.Empty() {
		dataDiags = append(dataDiags, Diagnostic{
			Code:     "insufficient_data",
			Kind:     scoremodel.Warning,
			Severity: scoremodel.SeverityInfo,
			Stage:    StageAggregate,
			Message:  "No nutrient values were supplied; the score is neutral.",
		})
	} else {
		scores = ComponentScores(m, per100, ctx, conds)
		available := make(map[scoremodel.Component]bool, len(scores))
		for c := range scores {
			available[c] = true
		}
		weights, weightRules = ComponentWeights(m.Weights, tier, ctx.Category, conds, available)
		if len(weights) == 0 {
			dataDiags = append(dataDiags, Diagnostic{
				Code:     "insufficient_data",
				Kind:     scoremodel.Warning,
				Severity: scoremodel.SeverityInfo,
				Stage:    StageAggregate,
				Message:  "None of the supplied nutrients can be scored; the score is neutral.",
			})
		}
	}

	markerRisk, contrib := MarkerRisk(m, markers, impact)
	agg := AggregateRisk(m, scores, weights, markerRisk, serving, mode)

	suitability := agg.Suitability
	empty := EmptyFood(per100)
	if empty && m.Adjustments.EmptyFoodPenalty > 0 {
		suitability *= m.Adjustments.EmptyFoodPenalty
		dataDiags = append(dataDiags, Diagnostic{
			Code:     "nutritionally_empty",
			Kind:     scoremodel.Warning,
			Severity: scoremodel.SeverityCaution,
			Stage:    StageAggregate,
			Message:  "Provides calories with no protein or fiber.",
		})
	}
	if mode == PortionAware && agg.ServingMultiplier > 1 {
		dataDiags = append(dataDiags, Diagnostic{
			Code:     "mind_portion",
			Kind:     scoremodel.Recommendation,
			Severity: scoremodel.SeverityInfo,
			Stage:    StageAggregate,
			Message:  "Small, concentrated serving; portions add up quickly.",
			Metric:   "serving_grams",
			Value:    round4(serving.Grams),
			Limit:    m.Serving.Baseline,
		})
	}

	base := suitability * 100
	score, applied, adjustDiags := PostProcess(m, base, ctx, tier, per100)

	all := concat(
		servingDiags,
		tierDiags,
		dataDiags,
		markerDiagnostics(m, contrib, markers),
		adjustDiags,
		EvaluateRules(m.Diagnostics, per100, tier, conds),
	)

	return Result{
		Score:           score,
		Suitability:     score / 100,
		Category:        scoremodel.Label(m.Labels, score),
		Confidence:      markers.Confidence,
		Tier:            tier,
		Mode:            mode,
		Model:           m.Name,
		ModelVersion:    m.Version,
		Warnings:        ofKind(all, scoremodel.Warning),
		Recommendations: ofKind(all, scoremodel.Recommendation),
		Diagnostics:     all,
		Details: Details{
			Conditions:          conds,
			Serving:             serving,
			NutrientsPer100:     per100.Values(),
			NutrientLevels:      nutrients.Values,
			MarkerLevels:        markers.Values,
			MarkerImpacts:       impact,
			MarkerContributions: contrib,
			ComponentScores:     scores,
			ComponentWeights:    weights,
			WeightRules:         weightRules,
			Aggregate:           agg,
			EmptyFood:           empty,
			BaseScore:           base,
			Adjustments:         applied,
			MissingMarkers:      markers.Missing,
			MissingNutrients:    nutrients.Missing,
		},
	}
}

// ScoreBatch scores requests concurrently and returns results in input
// order.
func (e *Engine) ScoreBatch(reqs []Request) []Result {
	out := make([]Result, len(reqs))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(reqs) {
		workers = len(reqs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = e.Score(reqs[i])
			}
		}()
	}
	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
