package importer

import (
	"regexp"
	"strings"

	"kochbuch/internal/recipe"
)

// amountRe matches the leading quantity/unit phrase of an ingredient line:
// an optional number (decimal or fraction) followed by an optional German
// unit word, or a bare unit word. The rest of the line is the name.
var amountRe = regexp.MustCompile(`(?i)^(` +
	`(?:\d+(?:[.,]\d+)?(?:\s*/\s*\d+)?|[½¼¾⅓⅔⅛])?` +
	`\s*(?:kg|g|mg|ml|l|el|tl|msp\.?|prisen?|stück|pck\.?|packung(?:en)?|dosen?|zehen?|tassen?|becher|handvoll|würfel|bund|blatt|blätter|scheiben?|tropfen|n\.\s?b\.)?` +
	`)\s+(.+)$`)

// SplitIngredient splits one ingredient line into its quantity/unit phrase
// and the ingredient name. The amount is a number (decimal or fraction),
// a unit word, or both; lines without a recognizable amount become a name
// with an empty amount.
func SplitIngredient(line string) recipe.Ingredient {
	line = normSpace(line)
	if line == "" {
		return recipe.Ingredient{}
	}
	if m := amountRe.FindStringSubmatch(line); m != nil && m[1] != "" {
		return recipe.Ingredient{Name: m[2], Amount: m[1]}
	}
	return recipe.Ingredient{Name: line}
}

func normSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
