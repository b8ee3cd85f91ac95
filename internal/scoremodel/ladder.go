package scoremodel

// Step is one row of a Ladder.
type Step struct {
	Ceiling float64 `json:"ceiling"`
	Score   float64 `json:"score"`
}

// Ladder is an ordered threshold table with ascending ceilings. It is read
// top-down: the first step whose ceiling is at or above the value wins, and
// the score is interpolated from the previous step so the curve has no flat
// plateaus between ceilings.
type Ladder []Step

// Score evaluates the ladder at v. Values below the first ceiling take the
// first score. Beyond the last ceiling a falling ladder keeps decaying as
// last.Score*last.Ceiling/v, so more of a harmful nutrient always costs
// something; a rising ladder holds its last score.
func (l Ladder) Score(v float64) float64 {
	if len(l) == 0 {
		return 0
	}
	if v <= l[0].Ceiling {
		return l[0].Score
	}
	for i := 1; i < len(l); i++ {
		if v > l[i].Ceiling {
			continue
		}
		prev := l[i-1]
		span := l[i].Ceiling - prev.Ceiling
		if span <= 0 {
			return l[i].Score
		}
		t := (v - prev.Ceiling) / span
		return prev.Score + t*(l[i].Score-prev.Score)
	}
	last := l[len(l)-1]
	if last.Score > 0 && last.Score < l[0].Score && last.Ceiling > 0 {
		return last.Score * last.Ceiling / v
	}
	return last.Score
}

// LabelStep maps a score floor to a category label.
type LabelStep struct {
	Floor float64 `json:"floor"`
	Label string  `json:"label"`
}

// Label returns the first label whose floor the score reaches, falling back
// to the last label.
func Label(steps []LabelStep, score float64) string {
	for _, s := range steps {
		if score >= s.Floor {
			return s.Label
		}
	}
	if len(steps) == 0 {
		return ""
	}
	return steps[len(steps)-1].Label
}
