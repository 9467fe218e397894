package importer

import "fmt"

// InvalidURLError means the input is not a parseable absolute URL.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q", e.URL)
}

// FetchError means the recipe page could not be retrieved. Status carries
// the upstream HTTP status when one was received, 0 otherwise.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NoRecipeFoundError means the page was fetched but neither extractor
// produced a usable recipe.
type NoRecipeFoundError struct {
	URL string
}

func (e *NoRecipeFoundError) Error() string {
	return fmt.Sprintf("no recipe found at %s", e.URL)
}
