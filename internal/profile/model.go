package profile

import (
	"time"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
)

// Profile is the stored health record of a user. Conditions is the free text
// the user declared at signup, e.g. "type 2 diabetes, high cholesterol".
type Profile struct {
	UserID     string                  `json:"user_id"`
	Markers    nutrition.HealthMarkers `json:"markers"`
	HeightCm   *float64                `json:"height_cm,omitempty"`
	WeightKg   *float64                `json:"weight_kg,omitempty"`
	Conditions string                  `json:"conditions,omitempty"`
	UpdatedAt  time.Time               `json:"updated_at"`
}
