package nutrition

// Marker identifies a measurable health indicator of the person.
type Marker string

const (
	FastingGlucose Marker = "fasting_glucose"
	HbA1c          Marker = "hba1c"
	LDL            Marker = "ldl"
	HDL            Marker = "hdl"
	Triglycerides  Marker = "triglycerides"
	ALT            Marker = "alt"
	AST            Marker = "ast"
	Creatinine     Marker = "creatinine"
	CRP            Marker = "crp"
	BMI            Marker = "bmi"
	Waist          Marker = "waist_cm"
	Systolic       Marker = "systolic_bp"
	Diastolic      Marker = "diastolic_bp"
	Age            Marker = "age"
)

// Nutrient identifies a property of a food, expressed per 100 g (or ml).
type Nutrient string

const (
	Calories      Nutrient = "calories"
	TotalFat      Nutrient = "total_fat"
	SaturatedFat  Nutrient = "saturated_fat"
	TransFat      Nutrient = "trans_fat"
	Cholesterol   Nutrient = "cholesterol"
	Sodium        Nutrient = "sodium"
	Carbohydrates Nutrient = "carbohydrates"
	Fiber         Nutrient = "fiber"
	Sugar         Nutrient = "sugar"
	Protein       Nutrient = "protein"
)

// HealthMarkers holds optional biometric values. A nil field means the
// marker is unavailable, which is not the same as zero.
type HealthMarkers struct {
	FastingGlucose *float64 `json:"fasting_glucose,omitempty"` // mg/dL
	HbA1c          *float64 `json:"hba1c,omitempty"`           // %
	LDL            *float64 `json:"ldl,omitempty"`             // mg/dL
	HDL            *float64 `json:"hdl,omitempty"`             // mg/dL
	Triglycerides  *float64 `json:"triglycerides,omitempty"`   // mg/dL
	ALT            *float64 `json:"alt,omitempty"`             // U/L
	AST            *float64 `json:"ast,omitempty"`             // U/L
	Creatinine     *float64 `json:"creatinine,omitempty"`      // mg/dL
	CRP            *float64 `json:"crp,omitempty"`             // mg/L
	BMI            *float64 `json:"bmi,omitempty"`
	WaistCm        *float64 `json:"waist_cm,omitempty"`
	Systolic       *float64 `json:"systolic_bp,omitempty"`
	Diastolic      *float64 `json:"diastolic_bp,omitempty"`
	Age            *float64 `json:"age,omitempty"`
}

// Values returns the present markers keyed by Marker.
func (h HealthMarkers) Values() map[Marker]float64 {
	out := make(map[Marker]float64)
	put := func(m Marker, v *float64) {
		if v != nil {
			out[m] = *v
		}
	}
	put(FastingGlucose, h.FastingGlucose)
	put(HbA1c, h.HbA1c)
	put(LDL, h.LDL)
	put(HDL, h.HDL)
	put(Triglycerides, h.Triglycerides)
	put(ALT, h.ALT)
	put(AST, h.AST)
	put(Creatinine, h.Creatinine)
	put(CRP, h.CRP)
	put(BMI, h.BMI)
	put(Waist, h.WaistCm)
	put(Systolic, h.Systolic)
	put(Diastolic, h.Diastolic)
	put(Age, h.Age)
	return out
}

// FoodNutrients holds optional nutrient quantities for the declared serving.
type FoodNutrients struct {
	Calories      *float64 `json:"calories,omitempty"`      // kcal
	TotalFat      *float64 `json:"total_fat,omitempty"`     // g
	SaturatedFat  *float64 `json:"saturated_fat,omitempty"` // g
	TransFat      *float64 `json:"trans_fat,omitempty"`     // g
	Cholesterol   *float64 `json:"cholesterol,omitempty"`   // mg
	Sodium        *float64 `json:"sodium,omitempty"`        // mg
	Carbohydrates *float64 `json:"carbohydrates,omitempty"` // g
	Fiber         *float64 `json:"fiber,omitempty"`         // g
	Sugar         *float64 `json:"sugar,omitempty"`         // g
	Protein       *float64 `json:"protein,omitempty"`       // g

	ServingSize *float64 `json:"serving_size,omitempty"`
	ServingUnit string   `json:"serving_unit,omitempty"`
}

// Values returns the present nutrients keyed by Nutrient.
func (f FoodNutrients) Values() map[Nutrient]float64 {
	out := make(map[Nutrient]float64)
	for _, n := range AllNutrients {
		if v := f.field(n); v != nil {
			out[n] = *v
		}
	}
	return out
}

// Get returns a nutrient value and whether it was supplied.
func (f FoodNutrients) Get(n Nutrient) (float64, bool) {
	if v := f.field(n); v != nil {
		return *v, true
	}
	return 0, false
}

// Empty reports whether no nutrient quantity was supplied.
func (f FoodNutrients) Empty() bool {
	for _, n := range AllNutrients {
		if f.field(n) != nil {
			return false
		}
	}
	return true
}

// Scaled returns a copy with every present nutrient multiplied by factor.
func (f FoodNutrients) Scaled(factor float64) FoodNutrients {
	out := f
	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		s := *v * factor
		return &s
	}
	out.Calories = scale(f.Calories)
	out.TotalFat = scale(f.TotalFat)
	out.SaturatedFat = scale(f.SaturatedFat)
	out.TransFat = scale(f.TransFat)
	out.Cholesterol = scale(f.Cholesterol)
	out.Sodium = scale(f.Sodium)
	out.Carbohydrates = scale(f.Carbohydrates)
	out.Fiber = scale(f.Fiber)
	out.Sugar = scale(f.Sugar)
	out.Protein = scale(f.Protein)
	return out
}

func (f FoodNutrients) field(n Nutrient) *float64 {
	switch n {
	case Calories:
		return f.Calories
	case TotalFat:
		return f.TotalFat
	case SaturatedFat:
		return f.SaturatedFat
	case TransFat:
		return f.TransFat
	case Cholesterol:
		return f.Cholesterol
	case Sodium:
		return f.Sodium
	case Carbohydrates:
		return f.Carbohydrates
	case Fiber:
		return f.Fiber
	case Sugar:
		return f.Sugar
	case Protein:
		return f.Protein
	}
	return nil
}

// AllNutrients lists every nutrient in a stable order.
var AllNutrients = []Nutrient{
	Calories, TotalFat, SaturatedFat, TransFat, Cholesterol,
	Sodium, Carbohydrates, Fiber, Sugar, Protein,
}

// Float returns a pointer to f. Handy for building optional fields.
func Float(f float64) *float64 {
	return &f
}
