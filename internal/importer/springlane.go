package importer

import (
	"regexp"
	"strings"

	"kochbuch/internal/recipe"
)

// SpringlaneExtractor scrapes springlane.de recipe pages, whose structured
// data tends to carry only the hero image. The gallery images live in the
// markup, so three independent heuristics hunt them down there.
type SpringlaneExtractor struct{}

var (
	svgImageRe     = regexp.MustCompile(`(?i)<image[^>]+?(?:xlink:)?href="([^"]+)"`)
	quotedImageRe  = regexp.MustCompile(`(?i)"(https?://[^"\s]+\.(?:jpe?g|png|webp))"`)
	springlaneSubs = []string{"springlane", "/media/recipe"}
)

// Match reports whether the host belongs to the springlane family.
func (e *SpringlaneExtractor) Match(host string) bool {
	return strings.Contains(host, "springlane")
}

// Extract recovers the title and every distinct content image URL.
func (e *SpringlaneExtractor) Extract(html string) *recipe.Partial {
	p := &recipe.Partial{Title: headingTitle(html)}

	var urls []string
	for _, re := range []*regexp.Regexp{svgImageRe, imgTagRe} {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			if isSpringlaneImage(m[1]) {
				urls = append(urls, m[1])
			}
		}
	}
	for _, m := range quotedImageRe.FindAllStringSubmatch(html, -1) {
		if isSpringlaneImage(m[1]) && !smallImgRe.MatchString(m[1]) {
			urls = append(urls, m[1])
		}
	}
	p.Images = dedupe(urls)
	return p
}

func isSpringlaneImage(u string) bool {
	for _, sub := range springlaneSubs {
		if strings.Contains(u, sub) {
			return true
		}
	}
	return false
}
