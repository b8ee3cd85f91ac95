package scoremodel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidModel  = errors.New("invalid scoring model")
	ErrModelNotFound = errors.New("scoring model not found")
)

// Validate checks that a model can be evaluated without producing values
// outside the documented ranges.
func (m *Model) Validate() error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(m.Name) == "" {
		bad("name is required")
	}
	if strings.TrimSpace(m.Version) == "" {
		bad("version is required")
	}
	if !finite(m.Gamma) || m.Gamma < 0 {
		bad("gamma must be a non-negative number")
	}
	if !finite(m.MarkerInfluence) || m.MarkerInfluence < 0 {
		bad("marker_influence must be a non-negative number")
	}
	if !finite(m.NeutralSuitability) || m.NeutralSuitability < 0 || m.NeutralSuitability > 1 {
		bad("neutral_suitability must lie in [0,1]")
	}

	for k, b := range m.MarkerBounds {
		if !finite(b.Low) || !finite(b.High) {
			bad("marker bounds for %s are not finite", k)
		}
	}
	for k, b := range m.NutrientBounds {
		if !finite(b.Low) || !finite(b.High) {
			bad("nutrient bounds for %s are not finite", k)
		}
	}
	for k, w := range m.MarkerWeights {
		if !finite(w) || w < 0 {
			bad("marker weight for %s must be non-negative", k)
		}
	}
	for n, row := range m.Coefficients {
		for mk, c := range row {
			if !finite(c) {
				bad("coefficient %s→%s is not finite", n, mk)
			}
		}
	}

	if len(m.Weights.Default) == 0 {
		bad("weights.default is empty")
	}
	for c, w := range m.Weights.Default {
		if !finite(w) || w < 0 {
			bad("default weight for %s must be non-negative", c)
		}
	}
	for _, r := range m.Weights.Rules {
		for c, f := range r.Factors {
			if !finite(f) || f < 0 {
				bad("weight rule %q factor for %s must be non-negative", r.Name, c)
			}
		}
	}
	for cls, f := range m.Weights.BMICalorieFactor {
		if !finite(f) || f < 0 {
			bad("bmi calorie factor for %q must be non-negative", cls)
		}
	}

	for c, l := range m.Ladders.Components {
		if err := l.validate(); err != nil {
			bad("ladder %s: %v", c, err)
		}
	}
	for cond, set := range m.Ladders.ConditionOverrides {
		for c, l := range set {
			if err := l.validate(); err != nil {
				bad("ladder %s/%s: %v", cond, c, err)
			}
		}
	}

	s := m.Serving
	if s.Baseline <= 0 {
		bad("serving.baseline must be positive")
	}
	if s.MaxMultiplier < 1 || s.MinMultiplier > 1 || s.MinMultiplier <= 0 {
		bad("serving multipliers must satisfy 0 < min <= 1 <= max")
	}

	if len(m.Labels) == 0 {
		bad("labels are required")
	}
	for i := 1; i < len(m.Labels); i++ {
		if m.Labels[i].Floor > m.Labels[i-1].Floor {
			bad("labels must be ordered by descending floor")
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidModel, m.Name, strings.Join(problems, "; "))
	}
	return nil
}

func (l Ladder) validate() error {
	if len(l) == 0 {
		return errors.New("empty")
	}
	for i, s := range l {
		if !finite(s.Ceiling) || !finite(s.Score) {
			return fmt.Errorf("step %d is not finite", i)
		}
		if s.Score < 0 || s.Score > 100 {
			return fmt.Errorf("step %d score %.2f outside [0,100]", i, s.Score)
		}
		if i > 0 && s.Ceiling <= l[i-1].Ceiling {
			return fmt.Errorf("ceilings must be strictly ascending at step %d", i)
		}
	}
	if last := l[len(l)-1]; last.Score < l[0].Score && last.Score <= 0 {
		return errors.New("a falling ladder must end above 0")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
