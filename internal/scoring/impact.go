package scoring

import (
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// PropagateImpact sums coefficient × normalized nutrient into a signed impact
// per marker. Negative coefficients are protective and are kept as is.
// Nutrients are visited in a fixed order so the sums are reproducible.
func PropagateImpact(m *scoremodel.Model, nutrients map[nutrition.Nutrient]float64) map[nutrition.Marker]float64 {
	impact := make(map[nutrition.Marker]float64)
	markers := m.ConfiguredMarkers()
	for _, n := range nutrition.AllNutrients {
		v, ok := nutrients[n]
		if !ok {
			continue
		}
		for _, mk := range markers {
			c, ok := m.Coefficients[n][mk]
			if !ok {
				continue
			}
			impact[mk] += c * v
		}
	}
	return impact
}
