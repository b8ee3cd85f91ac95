package profile

import (
	"errors"
	"strings"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
)

// Marker cut-offs at which a condition is assumed even if undeclared.
const (
	diabeticGlucose   = 126.0 // mg/dL fasting
	diabeticHbA1c     = 6.5   // %
	highLDL           = 160.0 // mg/dL
	highTriglycerides = 200.0 // mg/dL
	highSystolic      = 140.0 // mmHg
	highDiastolic     = 90.0  // mmHg
)

var declaredAliases = map[string]nutrition.Condition{
	"diabetes":            nutrition.Diabetic,
	"diabetic":            nutrition.Diabetic,
	"type 1 diabetes":     nutrition.Diabetic,
	"type 2 diabetes":     nutrition.Diabetic,
	"prediabetes":         nutrition.Diabetic,
	"high cholesterol":    nutrition.HighLipid,
	"cholesterol":         nutrition.HighLipid,
	"high_lipid":          nutrition.HighLipid,
	"high lipid":          nutrition.HighLipid,
	"hyperlipidemia":      nutrition.HighLipid,
	"dyslipidemia":        nutrition.HighLipid,
	"hypertension":        nutrition.Hypertension,
	"high blood pressure": nutrition.Hypertension,
	"high bp":             nutrition.Hypertension,
}

// BuildConditions derives condition flags from the markers and from a
// comma-separated list of declared conditions. Either source is enough.
func BuildConditions(m nutrition.HealthMarkers, declared string) nutrition.Conditions {
	var c nutrition.Conditions

	c.Diabetic = atLeast(m.FastingGlucose, diabeticGlucose) || atLeast(m.HbA1c, diabeticHbA1c)
	c.HighLipid = atLeast(m.LDL, highLDL) || atLeast(m.Triglycerides, highTriglycerides)
	c.Hypertension = atLeast(m.Systolic, highSystolic) || atLeast(m.Diastolic, highDiastolic)

	for _, part := range strings.Split(declared, ",") {
		key := strings.Join(strings.Fields(strings.ToLower(part)), " ")
		switch declaredAliases[key] {
		case nutrition.Diabetic:
			c.Diabetic = true
		case nutrition.HighLipid:
			c.HighLipid = true
		case nutrition.Hypertension:
			c.Hypertension = true
		}
	}

	if m.BMI != nil {
		c.BMIClass = BMIClassFor(*m.BMI)
	}
	return c
}

// Resolve fills in derived condition flags and the BMI class. Flags already
// set by the caller are kept.
func Resolve(p nutrition.HealthProfile) nutrition.HealthProfile {
	derived := BuildConditions(p.Markers, "")
	out := p
	out.Conditions.Diabetic = p.Conditions.Diabetic || derived.Diabetic
	out.Conditions.HighLipid = p.Conditions.HighLipid || derived.HighLipid
	out.Conditions.Hypertension = p.Conditions.Hypertension || derived.Hypertension
	if out.Conditions.BMIClass == nutrition.BMIUnknown {
		out.Conditions.BMIClass = derived.BMIClass
	}
	return out
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMIClassFor(bmi float64) nutrition.BMIClass {
	switch {
	case bmi <= 0:
		return nutrition.BMIUnknown
	case bmi < 18.5:
		return nutrition.BMIUnderweight
	case bmi < 25.0:
		return nutrition.BMINormal
	case bmi < 30.0:
		return nutrition.BMIOverweight
	default:
		return nutrition.BMIObese
	}
}

// HealthProfile turns a stored profile into what the scorer consumes. A
// missing BMI marker is computed from height and weight when both are
// plausible.
func (p *Profile) HealthProfile() nutrition.HealthProfile {
	markers := p.Markers
	if markers.BMI == nil && p.HeightCm != nil && p.WeightKg != nil {
		if bmi, err := CalculateBMI(*p.HeightCm, *p.WeightKg); err == nil {
			markers.BMI = nutrition.Float(bmi)
		}
	}
	return nutrition.HealthProfile{
		UserID:     p.UserID,
		Markers:    markers,
		Conditions: BuildConditions(markers, p.Conditions),
	}
}

func atLeast(v *float64, limit float64) bool {
	return v != nil && *v >= limit
}
