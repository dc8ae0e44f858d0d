package scrape

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned before any network traffic when a hosted
// scraper has no key configured.
var ErrMissingAPIKey = errors.New("API key is not set")

// ErrNoContent is returned when the page was fetched but produced no Markdown.
var ErrNoContent = errors.New("No markdown content returned")

// Result is the outcome of a single scrape.
type Result struct {
	// URL is the address that was finally fetched, after redirects when the
	// backend reports them.
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// Scraper fetches a page and returns its content as Markdown.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*Result, error)
}
