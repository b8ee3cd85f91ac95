package scoring

import "github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"

// Stage names the pipeline step that produced a diagnostic.
type Stage string

const (
	StageServing    Stage = "serving"
	StageNormalize  Stage = "normalize"
	StageProcessing Stage = "processing"
	StageAggregate  Stage = "aggregate"
	StageAdjust     Stage = "adjust"
	StageRules      Stage = "rules"
)

// Diagnostic is a structured finding. Stages return fresh slices of these
// and the engine concatenates them; nothing appends into a shared buffer.
type Diagnostic struct {
	Code     string              `json:"code"`
	Kind     scoremodel.Kind     `json:"kind"`
	Severity scoremodel.Severity `json:"severity"`
	Stage    Stage               `json:"stage"`
	Message  string              `json:"message"`
	Metric   string              `json:"metric,omitempty"`
	Value    float64             `json:"value,omitempty"`
	Limit    float64             `json:"limit,omitempty"`
}

func concat(parts ...[]Diagnostic) []Diagnostic {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Diagnostic, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func ofKind(ds []Diagnostic, k scoremodel.Kind) []Diagnostic {
	out := []Diagnostic{}
	for _, d := range ds {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

func info(stage Stage, code, msg string) Diagnostic {
	return Diagnostic{Code: code, Kind: scoremodel.Info, Severity: scoremodel.SeverityInfo, Stage: stage, Message: msg}
}
