package importer

import (
	"regexp"
	"strings"

	"kochbuch/internal/recipe"
)

// SiteExtractor recovers recipe data straight from a site family's raw
// markup, complementing whatever the page's structured data carries.
// Implementations never fail; they return best-effort partial data and
// leave unset whatever they could not find.
type SiteExtractor interface {
	// Match reports whether this extractor handles the given host.
	Match(host string) bool
	// Extract pulls partial recipe data out of the raw page markup.
	Extract(html string) *recipe.Partial
}

// DefaultSites lists the shipped site-family extractors in the order the
// importer consults them.
func DefaultSites() []SiteExtractor {
	return []SiteExtractor{
		&SpringlaneExtractor{},
		&ChefkochExtractor{},
	}
}

var (
	h1Re       = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	anyTagRe   = regexp.MustCompile(`(?s)<[^>]+>`)
	imgTagRe   = regexp.MustCompile(`(?i)<img[^>]+?(?:data-src|src)="([^"]+)"`)
	srcsetRe   = regexp.MustCompile(`(?i)srcset="([^"]+)"`)
	multiNlRe  = regexp.MustCompile(`\n{3,}`)
	smallImgRe = regexp.MustCompile(`(?i)thumb|small|[-_]\d{2,3}x\d{2,3}`)
)

// headingTitle returns the text of the first level-1 heading, cleaned.
func headingTitle(html string) string {
	m := h1Re.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return CleanTitle(normSpace(anyTagRe.ReplaceAllString(m[1], "")))
}

// srcsetURLs pulls the first URL token of every comma-separated candidate
// out of all srcset attributes in the markup.
func srcsetURLs(html string) []string {
	var out []string
	for _, m := range srcsetRe.FindAllStringSubmatch(html, -1) {
		for _, candidate := range strings.Split(m[1], ",") {
			fields := strings.Fields(candidate)
			if len(fields) > 0 {
				out = append(out, fields[0])
			}
		}
	}
	return out
}
