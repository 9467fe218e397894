package importer

import "kochbuch/internal/recipe"

// MergeSiteData combines the structured-data result with a site extractor's
// partial result. Structured data wins on every field except images, which
// are unioned (structured data's first, order preserved, exact duplicates
// dropped). When structured data is absent entirely the partial result is
// used as-is; missing fields keep their defaults downstream.
func MergeSiteData(structured *recipe.Extracted, partial *recipe.Partial) *recipe.Extracted {
	if partial == nil {
		return structured
	}
	if structured == nil {
		return &recipe.Extracted{
			Title:        partial.Title,
			Images:       partial.Images,
			Ingredients:  partial.Ingredients,
			Instructions: partial.Instructions,
		}
	}

	merged := *structured
	merged.Images = dedupe(append(append([]string{}, structured.Images...), partial.Images...))
	if merged.Title == "" {
		merged.Title = partial.Title
	}
	if merged.Instructions == "" {
		merged.Instructions = partial.Instructions
	}
	if len(merged.Ingredients) == 0 {
		merged.Ingredients = partial.Ingredients
	}
	return &merged
}
