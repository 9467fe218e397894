// Package importer turns an arbitrary recipe-site URL into a structured
// recipe: it fetches the page, reads the embedded schema.org structured
// data, falls back to per-site markup heuristics, and embeds a bounded
// number of the discovered images as data URIs.
package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"kochbuch/internal/recipe"
)

const (
	// DefaultMaxImages caps how many images one import will download.
	DefaultMaxImages = 5

	// PlaceholderTitle is used when a page yields a recipe but no usable title.
	PlaceholderTitle = "Importiertes Rezept"

	pageFetchTimeout = 30 * time.Second
)

// Importer runs the import pipeline for one URL at a time. It holds no
// per-request state and is safe for concurrent use.
type Importer struct {
	client    *http.Client
	images    *ImageFetcher
	sites     []SiteExtractor
	maxImages int
}

// New creates an Importer with the shipped site extractors.
func New() *Importer {
	return &Importer{
		client:    &http.Client{Timeout: pageFetchTimeout},
		images:    NewImageFetcher(),
		sites:     DefaultSites(),
		maxImages: DefaultMaxImages,
	}
}

// ImportFromURL fetches the page behind rawURL and extracts one recipe.
// It returns InvalidURLError for unparseable input, FetchError when the
// page cannot be retrieved and NoRecipeFoundError when the page carries
// no recognizable recipe. Partial extraction is not an error: missing
// fields come back with their defaults.
func (imp *Importer) ImportFromURL(ctx context.Context, rawURL string) (rec *recipe.Recipe, err error) {
	parsed, perr := url.Parse(rawURL)
	if perr != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, &InvalidURLError{URL: rawURL}
	}

	// Extraction runs over arbitrary third-party markup; a bug there must
	// not take the whole service down.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("import of %s panicked: %v", rawURL, r)
			rec, err = nil, fmt.Errorf("import of %s failed", rawURL)
		}
	}()

	page, status, ferr := imp.fetchPage(ctx, rawURL)
	if ferr != nil {
		return nil, &FetchError{URL: rawURL, Status: status, Err: ferr}
	}

	extracted := ExtractStructuredData(page)
	for _, site := range imp.sites {
		if site.Match(parsed.Host) {
			extracted = MergeSiteData(extracted, site.Extract(page))
			break
		}
	}
	if extracted == nil || (extracted.Title == "" && len(extracted.Ingredients) == 0 && extracted.Instructions == "") {
		return nil, &NoRecipeFoundError{URL: rawURL}
	}

	images := imp.images.Acquire(ctx, extracted.Images, imp.maxImages)

	return assemble(extracted, images, rawURL), nil
}

// assemble fills every remaining default and produces the final record.
func assemble(e *recipe.Extracted, images []string, sourceURL string) *recipe.Recipe {
	title := CleanTitle(e.Title)
	if title == "" {
		title = PlaceholderTitle
	}

	totalTime := e.TotalTime
	if totalTime == 0 {
		totalTime = e.PrepTime + e.CookTime
	}

	servings := e.Servings
	if servings <= 0 {
		servings = 4
	}

	weightUnit := e.WeightUnit
	if weightUnit == "" {
		weightUnit = "100g"
	}

	ingredients := e.Ingredients
	if ingredients == nil {
		ingredients = []recipe.Ingredient{}
	}
	categories := e.Categories
	if categories == nil {
		categories = []string{}
	}

	return &recipe.Recipe{
		Title:           title,
		Images:          images,
		Ingredients:     ingredients,
		Instructions:    e.Instructions,
		PrepTime:        e.PrepTime,
		RestTime:        e.RestTime,
		CookTime:        e.CookTime,
		TotalTime:       totalTime,
		Servings:        servings,
		CaloriesPerUnit: e.Calories,
		WeightUnit:      weightUnit,
		Categories:      categories,
		SourceURL:       sourceURL,
	}
}

func (imp *Importer) fetchPage(ctx context.Context, u string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := imp.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	return string(body), 0, nil
}
