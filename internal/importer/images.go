package importer

import (
	"context"
	"encoding/base64"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	imageAccept      = "image/avif,image/webp,image/png,image/jpeg,image/*;q=0.8"

	imageFetchTimeout = 10 * time.Second
	maxImageBytes     = 5 * 1024 * 1024
	minImageBytes     = 1000
)

// ImageFetcher downloads remote images one at a time and embeds them as
// base64 data URIs. Downloads are deliberately sequential to keep the
// outbound request rate against third-party sites low.
type ImageFetcher struct {
	client *http.Client
}

// NewImageFetcher creates an ImageFetcher with the fixed per-image timeout.
func NewImageFetcher() *ImageFetcher {
	return &ImageFetcher{client: &http.Client{Timeout: imageFetchTimeout}}
}

// Acquire fetches at most maxCount of the given URLs in input order and
// returns the successfully embedded ones, order preserved. URLs that are
// already data URIs pass through unchanged; anything that fails to download
// or validate is skipped, never an error.
func (f *ImageFetcher) Acquire(ctx context.Context, urls []string, maxCount int) []string {
	if maxCount < 0 {
		maxCount = 0
	}
	if len(urls) > maxCount {
		urls = urls[:maxCount]
	}

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.HasPrefix(u, "data:") {
			out = append(out, u)
			continue
		}
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			continue
		}
		if embedded, ok := f.fetchOne(ctx, u); ok {
			out = append(out, embedded)
		}
	}
	return out
}

func (f *ImageFetcher) fetchOne(ctx context.Context, u string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", imageAccept)

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("image fetch failed for %s: %v", u, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("image fetch for %s returned status %d", u, resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", false
	}
	// Oversized downloads and sub-1000-byte placeholders are both rejected.
	if len(body) > maxImageBytes || len(body) < minImageBytes {
		return "", false
	}

	contentType := "image/jpeg"
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && mediaType != "" {
		contentType = mediaType
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), true
}
