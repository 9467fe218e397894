package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kochbuch/internal/recipe"
)

// ExtractStructuredData scans the page for JSON-LD blocks, collects every
// schema.org Recipe entry across all of them and returns the most complete
// one. Blocks that fail to parse are skipped. Returns nil when no Recipe
// entry exists anywhere in the document.
func ExtractStructuredData(html string) *recipe.Extracted {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var candidates []*recipe.Extracted
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		for _, node := range recipeNodes(data) {
			candidates = append(candidates, decodeRecipe(node))
		}
	})
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if completeness(c) > completeness(best) {
			best = c
		}
	}
	return best
}

// completeness ranks Recipe candidates; ingredient count dominates,
// instruction length breaks near-ties.
func completeness(r *recipe.Extracted) int {
	return 100*len(r.Ingredients) + len(r.Instructions)
}

// recipeNodes collects every Recipe-typed object from a parsed JSON-LD
// block: the block may be a single object or an array, and each object may
// carry the Recipe directly or one level down inside an @graph collection.
func recipeNodes(data any) []map[string]any {
	var objects []map[string]any
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				objects = append(objects, obj)
			}
		}
	case map[string]any:
		objects = append(objects, v)
	}

	var out []map[string]any
	for _, obj := range objects {
		if isRecipeType(obj["@type"]) {
			out = append(out, obj)
			continue
		}
		if graph, ok := obj["@graph"].([]any); ok {
			for _, item := range graph {
				if node, ok := item.(map[string]any); ok && isRecipeType(node["@type"]) {
					out = append(out, node)
				}
			}
		}
	}
	return out
}

func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func decodeRecipe(node map[string]any) *recipe.Extracted {
	r := &recipe.Extracted{
		Title:        CleanTitle(asString(node["name"])),
		Images:       decodeImages(node),
		Ingredients:  decodeIngredients(node["recipeIngredient"]),
		Instructions: decodeInstructions(node["recipeInstructions"]),
		PrepTime:     ParseTime(asString(node["prepTime"])),
		CookTime:     ParseTime(asString(node["cookTime"])),
		TotalTime:    ParseTime(asString(node["totalTime"])),
		Servings:     decodeYield(node["recipeYield"]),
		Categories:   asStrings(node["recipeCategory"]),
		WeightUnit:   "100g",
	}
	if nut, ok := node["nutrition"].(map[string]any); ok {
		r.Calories = firstInt(asString(nut["calories"]), 0)
		if unit := asString(nut["servingSize"]); unit != "" {
			r.WeightUnit = unit
		}
	}
	return r
}

// decodeImages merges the image and thumbnailUrl fields. Either may be a
// bare URL, an object carrying url/contentUrl/@id, or an array of those.
func decodeImages(node map[string]any) []string {
	var urls []string
	for _, key := range []string{"image", "thumbnailUrl"} {
		urls = append(urls, imageURLs(node[key])...)
	}
	return dedupe(urls)
}

func imageURLs(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, imageURLs(item)...)
		}
		return out
	case map[string]any:
		for _, key := range []string{"url", "contentUrl", "@id"} {
			if s := asString(t[key]); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

func decodeIngredients(v any) []recipe.Ingredient {
	var out []recipe.Ingredient
	for _, line := range asStrings(v) {
		out = append(out, SplitIngredient(line))
	}
	return out
}

// decodeInstructions handles the three shapes recipeInstructions takes in
// the wild: a single string, an array of strings, or an array of HowToStep
// objects possibly grouped into HowToSection objects. Steps are numbered
// sequentially and joined with blank lines.
func decodeInstructions(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		steps := flattenSteps(t)
		var b strings.Builder
		for i, step := range steps {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, step)
		}
		return b.String()
	}
	return ""
}

func flattenSteps(items []any) []string {
	var out []string
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if sub, ok := t["itemListElement"].([]any); ok {
				out = append(out, flattenSteps(sub)...)
				continue
			}
			if s := asString(t["text"]); s != "" {
				out = append(out, s)
			} else if s := asString(t["name"]); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// decodeYield reads recipeYield, which may be a string, a number or an
// array (first element used), and extracts the serving count. Defaults to 4.
func decodeYield(v any) int {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return 4
		}
		v = arr[0]
	}
	if n, ok := v.(float64); ok && n > 0 {
		return int(n)
	}
	return firstInt(asString(v), 4)
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
