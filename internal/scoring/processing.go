package scoring

import "github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/nutrition"

var tierAliases = map[nutrition.ProcessingLevel]nutrition.Tier{
	nutrition.Whole:              nutrition.TierWhole,
	"unprocessed":                nutrition.TierWhole,
	"nova_1":                     nutrition.TierWhole,
	"1":                          nutrition.TierWhole,
	nutrition.MinimallyProcessed: nutrition.TierCulinary,
	"culinary_ingredient":        nutrition.TierCulinary,
	"processed_culinary":         nutrition.TierCulinary,
	"nova_2":                     nutrition.TierCulinary,
	"2":                          nutrition.TierCulinary,
	nutrition.Processed:          nutrition.TierProcessed,
	"nova_3":                     nutrition.TierProcessed,
	"3":                          nutrition.TierProcessed,
	nutrition.UltraProcessed:     nutrition.TierUltra,
	"ultraprocessed":             nutrition.TierUltra,
	"nova_4":                     nutrition.TierUltra,
	"4":                          nutrition.TierUltra,
}

// ClassifyProcessing relabels the upstream processing level as a tier.
// Missing or unknown labels fall back to the culinary tier, which carries
// no bonus and no ceiling.
func ClassifyProcessing(ctx nutrition.FoodContext) (nutrition.Tier, []Diagnostic) {
	level := ctx.Normalized().ProcessingLevel
	if t, ok := tierAliases[level]; ok {
		return t, nil
	}
	msg := "Processing level not provided; scored as minimally processed."
	if level != nutrition.ProcessingUnlabeled {
		msg = "Processing level \"" + string(level) + "\" not recognised; scored as minimally processed."
	}
	return nutrition.TierCulinary, []Diagnostic{info(StageProcessing, "processing_level_assumed", msg)}
}
