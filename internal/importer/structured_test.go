package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(blocks ...string) string {
	doc := "<html><head>"
	for _, b := range blocks {
		doc += `<script type="application/ld+json">` + b + `</script>`
	}
	return doc + "</head><body></body></html>"
}

func TestExtractStructuredDataNoBlocks(t *testing.T) {
	assert.Nil(t, ExtractStructuredData("<html><body><p>nothing here</p></body></html>"))
}

func TestExtractStructuredDataNonRecipeBlock(t *testing.T) {
	doc := page(`{"@type":"Article","name":"Not a recipe"}`)
	assert.Nil(t, ExtractStructuredData(doc))
}

func TestExtractStructuredDataBasicRecipe(t *testing.T) {
	doc := page(`{
		"@context": "https://schema.org",
		"@type": "Recipe",
		"name": "Tomatensuppe von Maria",
		"image": "https://example.com/soup.jpg",
		"recipeIngredient": ["500 g Tomaten", "1 Zwiebel", "Salz und Pfeffer"],
		"recipeInstructions": "Alles kochen.",
		"prepTime": "PT10M",
		"cookTime": "PT20M",
		"recipeYield": "4 Portionen",
		"recipeCategory": "Suppe",
		"nutrition": {"calories": "120 kcal", "servingSize": "250g"}
	}`)

	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "Tomatensuppe", r.Title)
	assert.Equal(t, []string{"https://example.com/soup.jpg"}, r.Images)
	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, "Tomaten", r.Ingredients[0].Name)
	assert.Equal(t, "500 g", r.Ingredients[0].Amount)
	assert.Equal(t, "Salz und Pfeffer", r.Ingredients[2].Name)
	assert.Equal(t, "", r.Ingredients[2].Amount)
	assert.Equal(t, "Alles kochen.", r.Instructions)
	assert.Equal(t, 10, r.PrepTime)
	assert.Equal(t, 20, r.CookTime)
	assert.Equal(t, 0, r.RestTime)
	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, 120, r.Calories)
	assert.Equal(t, "250g", r.WeightUnit)
	assert.Equal(t, []string{"Suppe"}, r.Categories)
}

func TestExtractStructuredDataGraph(t *testing.T) {
	doc := page(`{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebPage", "name": "Seite"},
			{"@type": ["Recipe", "Thing"], "name": "Linsen-Curry", "recipeIngredient": ["200 g Linsen"]}
		]
	}`)

	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "Linsen-Curry", r.Title)
	require.Len(t, r.Ingredients, 1)
}

func TestExtractStructuredDataArrayBlock(t *testing.T) {
	doc := page(`[
		{"@type": "BreadcrumbList"},
		{"@type": "Recipe", "name": "Pfannkuchen"}
	]`)

	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "Pfannkuchen", r.Title)
}

func TestExtractStructuredDataSkipsBrokenBlocks(t *testing.T) {
	doc := page(
		`{not valid json`,
		`{"@type": "Recipe", "name": "Käsespätzle"}`,
	)

	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "Käsespätzle", r.Title)
}

func TestExtractStructuredDataPicksMostComplete(t *testing.T) {
	// Two candidates with equal instruction length: the one with more
	// ingredients must win, regardless of block order.
	doc := page(
		`{"@type": "Recipe", "name": "Sparse", "recipeIngredient": ["a", "b"], "recipeInstructions": "xxxx"}`,
		`{"@type": "Recipe", "name": "Rich", "recipeIngredient": ["a", "b", "c", "d", "e"], "recipeInstructions": "xxxx"}`,
	)

	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "Rich", r.Title)

	// Ties go to the first-discovered candidate.
	doc = page(
		`{"@type": "Recipe", "name": "First", "recipeIngredient": ["a"], "recipeInstructions": "xx"}`,
		`{"@type": "Recipe", "name": "Second", "recipeIngredient": ["a"], "recipeInstructions": "xx"}`,
	)
	r = ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "First", r.Title)
}

func TestExtractStructuredDataInstructionShapes(t *testing.T) {
	// Array of strings: numbered, blank-line separated.
	doc := page(`{"@type": "Recipe", "name": "T", "recipeInstructions": ["Schneiden", "Kochen"]}`)
	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "1. Schneiden\n\n2. Kochen", r.Instructions)

	// HowToStep objects with text or name, HowToSection flattened.
	doc = page(`{"@type": "Recipe", "name": "T", "recipeInstructions": [
		{"@type": "HowToSection", "name": "Teig", "itemListElement": [
			{"@type": "HowToStep", "text": "Mehl mischen"},
			{"@type": "HowToStep", "name": "Ruhen lassen"}
		]},
		{"@type": "HowToStep", "text": "Backen"}
	]}`)
	r = ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, "1. Mehl mischen\n\n2. Ruhen lassen\n\n3. Backen", r.Instructions)
}

func TestExtractStructuredDataImageShapes(t *testing.T) {
	doc := page(`{
		"@type": "Recipe",
		"name": "T",
		"image": [
			"https://example.com/a.jpg",
			{"url": "https://example.com/b.jpg"},
			{"contentUrl": "https://example.com/c.jpg"},
			{"@id": "https://example.com/d.jpg"}
		],
		"thumbnailUrl": ["https://example.com/a.jpg", "https://example.com/e.jpg"]
	}`)

	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, []string{
		"https://example.com/a.jpg",
		"https://example.com/b.jpg",
		"https://example.com/c.jpg",
		"https://example.com/d.jpg",
		"https://example.com/e.jpg",
	}, r.Images)
}

func TestExtractStructuredDataYieldShapes(t *testing.T) {
	cases := []struct {
		yield string
		want  int
	}{
		{`"6 Portionen"`, 6},
		{`["2 Stück", "4 Stück"]`, 2},
		{`3`, 3},
		{`"viele"`, 4},
		{`null`, 4},
	}
	for _, c := range cases {
		doc := page(`{"@type": "Recipe", "name": "T", "recipeYield": ` + c.yield + `}`)
		r := ExtractStructuredData(doc)
		require.NotNil(t, r, "yield %s", c.yield)
		assert.Equal(t, c.want, r.Servings, "yield %s", c.yield)
	}
}

func TestExtractStructuredDataDefaults(t *testing.T) {
	doc := page(`{"@type": "Recipe", "name": "Minimal"}`)
	r := ExtractStructuredData(doc)
	require.NotNil(t, r)
	assert.Equal(t, 0, r.PrepTime)
	assert.Equal(t, 0, r.CookTime)
	assert.Equal(t, 0, r.TotalTime)
	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, 0, r.Calories)
	assert.Equal(t, "100g", r.WeightUnit)
	assert.Empty(t, r.Categories)
	assert.Empty(t, r.Images)
}
