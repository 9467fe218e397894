package recipe

// Ingredient is one ingredient line split into an amount phrase and a name.
// Amount is the empty string when no quantity could be recognized.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Extracted is the intermediate result of running the extractors over one
// page. Every field is best-effort; defaults are applied by the importer when
// the final Recipe is assembled. It is never persisted.
type Extracted struct {
	Title        string
	Images       []string
	Ingredients  []Ingredient
	Instructions string
	PrepTime     int
	CookTime     int
	RestTime     int
	TotalTime    int
	Servings     int
	Calories     int
	WeightUnit   string
	Categories   []string
}

// Partial holds what a site-specific HTML extractor recovered from raw
// markup. Extractors only set the fields they actually found, so the merge
// can tell "not found" apart from "found empty".
type Partial struct {
	Title        string
	Images       []string
	Ingredients  []Ingredient
	Instructions string
}

// Recipe is a fully imported recipe as stored and returned by the API.
// Images hold embedded data URIs, not remote URLs.
type Recipe struct {
	ID              int64        `json:"id" db:"id"`
	Title           string       `json:"title" db:"title"`
	Images          []string     `json:"images"`
	Ingredients     []Ingredient `json:"ingredients"`
	Instructions    string       `json:"instructions" db:"instructions"`
	PrepTime        int          `json:"prepTime" db:"prep_time"`
	RestTime        int          `json:"restTime" db:"rest_time"`
	CookTime        int          `json:"cookTime" db:"cook_time"`
	TotalTime       int          `json:"totalTime" db:"total_time"`
	Servings        int          `json:"servings" db:"servings"`
	CaloriesPerUnit int          `json:"caloriesPerUnit" db:"calories_per_unit"`
	WeightUnit      string       `json:"weightUnit" db:"weight_unit"`
	Categories      []string     `json:"categories"`
	SourceURL       string       `json:"sourceUrl" db:"source_url"`
}
