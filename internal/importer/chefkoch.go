package importer

import (
	"html"
	"regexp"
	"strings"

	"kochbuch/internal/recipe"
)

// ChefkochExtractor scrapes chefkoch.de recipe pages. The site's structured
// data often lacks the user-submitted gallery and sometimes the ingredient
// table, so both are recovered from the raw markup.
type ChefkochExtractor struct{}

var (
	twoColRowRe    = regexp.MustCompile(`(?is)<tr[^>]*>\s*<td[^>]*>(.*?)</td>\s*<td[^>]*>(.*?)</td>\s*</tr>`)
	ingredientLiRe = regexp.MustCompile(`(?is)<li[^>]+class="[^"]*ingredient[^"]*"[^>]*>(.*?)</li>`)
	prepBlockRe    = regexp.MustCompile(`(?is)<(div|section|article)[^>]+class="[^"]*(?:zubereitung|instruction|preparation)[^"]*"[^>]*>(.*?)</(?:div|section|article)>`)
	brRe           = regexp.MustCompile(`(?i)<br\s*/?>`)
	paraEndRe      = regexp.MustCompile(`(?i)</p>`)
	lineEdgeRe     = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	headerCellRe   = regexp.MustCompile(`(?i)^(?:menge|zutaten?)$`)
)

// Match reports whether the host belongs to the chefkoch family.
func (e *ChefkochExtractor) Match(host string) bool {
	return strings.Contains(host, "chefkoch")
}

// Extract recovers title, ingredients, instructions and gallery images.
func (e *ChefkochExtractor) Extract(raw string) *recipe.Partial {
	return &recipe.Partial{
		Title:        headingTitle(raw),
		Ingredients:  e.extractIngredients(raw),
		Instructions: e.extractInstructions(raw),
		Images:       e.extractImages(raw),
	}
}

// extractIngredients runs two heuristics: the classic two-column ingredient
// table (amount cell, name cell) and list items tagged with an ingredient
// class. Results are concatenated.
func (e *ChefkochExtractor) extractIngredients(raw string) []recipe.Ingredient {
	var out []recipe.Ingredient

	for _, m := range twoColRowRe.FindAllStringSubmatch(raw, -1) {
		amount := cellText(m[1])
		name := cellText(m[2])
		if name == "" || headerCellRe.MatchString(name) || headerCellRe.MatchString(amount) {
			continue
		}
		out = append(out, recipe.Ingredient{Name: name, Amount: amount})
	}

	for _, m := range ingredientLiRe.FindAllStringSubmatch(raw, -1) {
		if line := cellText(m[1]); line != "" {
			out = append(out, SplitIngredient(line))
		}
	}
	return out
}

// extractInstructions takes the first block element whose class suggests
// preparation text and flattens it to plain text: <br> becomes a newline,
// a paragraph end a blank line, runs of 3+ newlines collapse to 2.
func (e *ChefkochExtractor) extractInstructions(raw string) string {
	m := prepBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	text := brRe.ReplaceAllString(m[2], "\n")
	text = paraEndRe.ReplaceAllString(text, "\n\n")
	text = anyTagRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(html.UnescapeString(text), " ", " ")
	text = lineEdgeRe.ReplaceAllString(text, "\n")
	text = multiNlRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// extractImages merges three heuristics: img tags (src or data-src),
// backslash-escaped URLs inside embedded JSON, and srcset candidates.
func (e *ChefkochExtractor) extractImages(raw string) []string {
	var urls []string

	for _, m := range imgTagRe.FindAllStringSubmatch(raw, -1) {
		if isChefkochImage(m[1]) && !smallImgRe.MatchString(m[1]) {
			urls = append(urls, m[1])
		}
	}

	for _, m := range escapedImageRe.FindAllStringSubmatch(raw, -1) {
		u := strings.ReplaceAll(m[1], `\/`, "/")
		if isChefkochImage(u) {
			urls = append(urls, u)
		}
	}

	for _, u := range srcsetURLs(raw) {
		if isChefkochImage(u) {
			urls = append(urls, u)
		}
	}
	return dedupe(urls)
}

// escapedImageRe finds image URLs inside embedded JSON payloads, where
// slashes arrive escaped as \/.
var escapedImageRe = regexp.MustCompile(`(?i)"(https?:\\/\\/[^"\s]*chefkoch[^"\s]*\.(?:jpe?g|png|webp))"`)

func isChefkochImage(u string) bool {
	return strings.Contains(u, "chefkoch")
}

// cellText strips tags and entities from a table cell or list item.
func cellText(s string) string {
	return normSpace(strings.ReplaceAll(html.UnescapeString(anyTagRe.ReplaceAllString(s, " ")), " ", " "))
}
