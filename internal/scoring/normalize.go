package scoring

import (
	"math"
	"sort"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
)

// Normalize maps v onto [0,1] between the bounds. Equal bounds carry no
// information and yield 0.5.
func Normalize(v float64, b scoremodel.Bounds) float64 {
	if b.Low == b.High {
		return 0.5
	}
	return clamp01((v - b.Low) / (b.High - b.Low))
}

// MarkerLevels are the normalized markers that were supplied.
type MarkerLevels struct {
	Values     map[nutrition.Marker]float64
	Missing    []nutrition.Marker
	Confidence float64
}

// NormalizeMarkers normalizes every configured marker that is present.
// Absent or non-finite values are listed as missing and never defaulted.
// Markers without configured bounds are ignored.
func NormalizeMarkers(m *scoremodel.Model, markers nutrition.HealthMarkers) MarkerLevels {
	raw := markers.Values()
	configured := m.ConfiguredMarkers()
	out := MarkerLevels{
		Values:  make(map[nutrition.Marker]float64, len(raw)),
		Missing: []nutrition.Marker{},
	}
	for _, mk := range configured {
		v, ok := raw[mk]
		if !ok || !finite(v) {
			out.Missing = append(out.Missing, mk)
			continue
		}
		out.Values[mk] = Normalize(v, m.MarkerBounds[mk])
	}
	if len(configured) > 0 {
		out.Confidence = float64(len(out.Values)) / float64(len(configured))
	}
	return out
}

// NutrientLevels are the normalized nutrients that were supplied.
type NutrientLevels struct {
	Values  map[nutrition.Nutrient]float64
	Missing []nutrition.Nutrient
}

// NormalizeNutrients normalizes per-100 nutrients against the configured
// bounds.
func NormalizeNutrients(m *scoremodel.Model, per100 nutrition.FoodNutrients) NutrientLevels {
	out := NutrientLevels{
		Values:  make(map[nutrition.Nutrient]float64),
		Missing: []nutrition.Nutrient{},
	}
	configured := make([]nutrition.Nutrient, 0, len(m.NutrientBounds))
	for n := range m.NutrientBounds {
		configured = append(configured, n)
	}
	sort.Slice(configured, func(i, j int) bool { return configured[i] < configured[j] })

	for _, n := range configured {
		v, ok := per100.Get(n)
		if !ok || !finite(v) {
			out.Missing = append(out.Missing, n)
			continue
		}
		out.Values[n] = Normalize(v, m.NutrientBounds[n])
	}
	return out
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
