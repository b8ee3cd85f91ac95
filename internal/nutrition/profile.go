package nutrition

// Tier is the 1..4 processing classification used to gate weights and
// penalties.
type Tier int

const (
	TierWhole     Tier = 1
	TierCulinary  Tier = 2
	TierProcessed Tier = 3
	TierUltra     Tier = 4
	TierAny       Tier = 0
)

func (t Tier) String() string {
	switch t {
	case TierWhole:
		return "whole"
	case TierCulinary:
		return "minimally_processed"
	case TierProcessed:
		return "processed"
	case TierUltra:
		return "ultra_processed"
	}
	return "unclassified"
}

// Condition is a health condition that reweights scoring.
type Condition string

const (
	Diabetic     Condition = "diabetic"
	HighLipid    Condition = "high_lipid"
	Hypertension Condition = "hypertension"
)

// BMIClass buckets body-mass index for calorie weighting.
type BMIClass string

const (
	BMIUnknown     BMIClass = ""
	BMIUnderweight BMIClass = "underweight"
	BMINormal      BMIClass = "normal"
	BMIOverweight  BMIClass = "overweight"
	BMIObese       BMIClass = "obese"
)

// Conditions are the condition flags of the person being scored.
type Conditions struct {
	Diabetic     bool     `json:"diabetic,omitempty"`
	HighLipid    bool     `json:"high_lipid,omitempty"`
	Hypertension bool     `json:"hypertension,omitempty"`
	BMIClass     BMIClass `json:"bmi_class,omitempty"`
}

// Has reports whether the condition flag is set.
func (c Conditions) Has(cond Condition) bool {
	switch cond {
	case Diabetic:
		return c.Diabetic
	case HighLipid:
		return c.HighLipid
	case Hypertension:
		return c.Hypertension
	}
	return false
}

// Active lists the set condition flags in a stable order.
func (c Conditions) Active() []Condition {
	var out []Condition
	for _, cond := range []Condition{Diabetic, HighLipid, Hypertension} {
		if c.Has(cond) {
			out = append(out, cond)
		}
	}
	return out
}

// HealthProfile is what the profile collaborator supplies for one person.
type HealthProfile struct {
	UserID     string        `json:"user_id,omitempty"`
	Markers    HealthMarkers `json:"markers"`
	Conditions Conditions    `json:"conditions"`
}
