package nutrition

import "strings"

// ProcessingLevel is the upstream NOVA-style label for a food.
type ProcessingLevel string

const (
	Whole               ProcessingLevel = "whole"
	MinimallyProcessed  ProcessingLevel = "minimally_processed"
	Processed           ProcessingLevel = "processed"
	UltraProcessed      ProcessingLevel = "ultra_processed"
	ProcessingUnlabeled ProcessingLevel = ""
)

// Category is the food group assigned upstream.
type Category string

const (
	Fruit          Category = "fruit"
	Vegetable      Category = "vegetable"
	Legume         Category = "legume"
	Grain          Category = "grain"
	NutsSeeds      Category = "nuts_seeds"
	Dairy          Category = "dairy"
	ProteinFood    Category = "protein"
	FatOil         Category = "fat_oil"
	Beverage       Category = "beverage"
	Snack          Category = "snack"
	Dessert        Category = "dessert"
	FastFood       Category = "fast_food"
	Meal           Category = "meal"
	Condiment      Category = "condiment"
	OtherCategory  Category = "other"
	NoCategoryInfo Category = ""
)

type SugarType string

const (
	NaturalSugar SugarType = "natural"
	AddedSugar   SugarType = "added"
	MixedSugar   SugarType = "mixed"
	NoSugar      SugarType = "none"
)

type FatType string

const (
	HealthyFat       FatType = "healthy"
	SaturatedFatType FatType = "saturated"
	TransFatType     FatType = "trans"
	MixedFat         FatType = "mixed"
)

type CarbType string

const (
	ComplexCarb CarbType = "complex"
	SimpleCarb  CarbType = "simple"
	RefinedCarb CarbType = "refined"
	MixedCarb   CarbType = "mixed"
)

type CookingMethod string

const (
	Raw       CookingMethod = "raw"
	Steamed   CookingMethod = "steamed"
	Boiled    CookingMethod = "boiled"
	Grilled   CookingMethod = "grilled"
	Baked     CookingMethod = "baked"
	Fried     CookingMethod = "fried"
	DeepFried CookingMethod = "deep_fried"
)

// Quality is the qualitative rating produced by the extraction collaborator.
type Quality string

const (
	Excellent Quality = "excellent"
	Good      Quality = "good"
	Fair      Quality = "fair"
	Poor      Quality = "poor"
	VeryPoor  Quality = "very_poor"
)

// FoodContext is categorical metadata about a food. It is trusted as given.
type FoodContext struct {
	ProcessingLevel         ProcessingLevel `json:"processing_level,omitempty"`
	Category                Category        `json:"category,omitempty"`
	SugarType               SugarType       `json:"sugar_type,omitempty"`
	FatType                 FatType         `json:"fat_type,omitempty"`
	CarbType                CarbType        `json:"carb_type,omitempty"`
	CookingMethod           CookingMethod   `json:"cooking_method,omitempty"`
	Quality                 Quality         `json:"quality,omitempty"`
	HasArtificialSweeteners bool            `json:"has_artificial_sweeteners,omitempty"`
	HasPreservatives        bool            `json:"has_preservatives,omitempty"`
	IsFortified             bool            `json:"is_fortified,omitempty"`
}

// Normalized lowercases and trims the categorical fields so that labels such
// as "Ultra-Processed" or " Vegetable " match the constants above.
func (c FoodContext) Normalized() FoodContext {
	out := c
	out.ProcessingLevel = ProcessingLevel(canon(string(c.ProcessingLevel)))
	out.Category = Category(canon(string(c.Category)))
	out.SugarType = SugarType(canon(string(c.SugarType)))
	out.FatType = FatType(canon(string(c.FatType)))
	out.CarbType = CarbType(canon(string(c.CarbType)))
	out.CookingMethod = CookingMethod(canon(string(c.CookingMethod)))
	out.Quality = Quality(canon(string(c.Quality)))
	return out
}

func canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// IsProduce reports whether the category is fruit or vegetable.
func (c Category) IsProduce() bool {
	return c == Fruit || c == Vegetable
}
