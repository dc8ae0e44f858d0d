package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	scrapeapi "github.com/leofalp/flowcanvas/providers/scrape"
)

type fakeScraper struct {
	markdown string
	err      error
	calls    int
	lastURL  string
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (*scrapeapi.Result, error) {
	f.calls++
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return &scrapeapi.Result{URL: url, Markdown: f.markdown}, nil
}

func newNode(t *testing.T, payload flow.ScrapePayload, scraper scrapeapi.Scraper) (*Node, *flow.Store) {
	t.Helper()
	store := flow.NewStore()
	if err := store.AddNode(flow.Node{ID: "scrape-1", Payload: payload}); err != nil {
		t.Fatal(err)
	}
	scope, err := store.Scope("scrape-1")
	if err != nil {
		t.Fatal(err)
	}
	n, err := New(scope, scraper)
	if err != nil {
		t.Fatal(err)
	}
	return n, store
}

func payloadOf(t *testing.T, store *flow.Store) flow.ScrapePayload {
	t.Helper()
	n, _ := store.Node("scrape-1")
	return n.Payload.(flow.ScrapePayload)
}

func TestNew_InputFromPayload(t *testing.T) {
	n, _ := newNode(t, flow.ScrapePayload{URL: "https://example.com"}, &fakeScraper{})
	if n.URL() != "https://example.com" {
		t.Errorf("Expected URL from payload, got %q", n.URL())
	}
	if n.Input() != n.URL() {
		t.Error("Expected Input to mirror URL")
	}
}

func TestNew_RejectsOtherKinds(t *testing.T) {
	store := flow.NewStore()
	_ = store.AddNode(flow.Node{ID: "chat-1", Payload: flow.ChatPayload{}})
	scope, _ := store.Scope("chat-1")
	if _, err := New(scope, &fakeScraper{}); !errors.Is(err, flow.ErrKindMismatch) {
		t.Errorf("Expected ErrKindMismatch, got %v", err)
	}
}

func TestRun_Success(t *testing.T) {
	scraper := &fakeScraper{markdown: "# Title\nBody"}
	n, store := newNode(t, flow.ScrapePayload{}, scraper)
	n.SetURL("  https://example.com  ")

	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if scraper.lastURL != "https://example.com" {
		t.Errorf("Expected trimmed URL, got %q", scraper.lastURL)
	}
	got := payloadOf(t, store)
	if got.Markdown != "# Title\nBody" || got.URL != "https://example.com" {
		t.Errorf("Unexpected payload %+v", got)
	}
	if n.State().Status != action.StatusSucceeded {
		t.Errorf("Expected succeeded, got %s", n.State().Status)
	}
}

func TestRun_Failures(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		scraper  scrapeapi.Scraper
		category action.Category
		message  string
		calls    int
	}{
		{
			name:     "empty url",
			url:      "   ",
			scraper:  &fakeScraper{},
			category: action.CategoryValidation,
			message:  "Please enter a URL",
		},
		{
			name:     "missing key",
			url:      "https://example.com",
			scraper:  &fakeScraper{err: fmt.Errorf("Firecrawl %w", scrapeapi.ErrMissingAPIKey)},
			category: action.CategoryCredential,
			message:  "Firecrawl API key is not set",
			calls:    1,
		},
		{
			name:     "provider error",
			url:      "https://example.com",
			scraper:  &fakeScraper{err: errors.New("rate limited")},
			category: action.CategoryProvider,
			message:  "rate limited",
			calls:    1,
		},
		{
			name:     "empty markdown",
			url:      "https://example.com",
			scraper:  &fakeScraper{},
			category: action.CategoryProvider,
			message:  "No markdown content returned",
			calls:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			previous := flow.ScrapePayload{URL: "https://old.example", Markdown: "old"}
			n, store := newNode(t, previous, tc.scraper)
			n.SetURL(tc.url)

			err := n.Run(context.Background())
			if action.Classify(err) != tc.category {
				t.Errorf("Expected category %s, got %s (%v)", tc.category, action.Classify(err), err)
			}
			if state := n.State(); state.Message != tc.message || state.Status != action.StatusFailed {
				t.Errorf("Expected failed with %q, got %s %q", tc.message, state.Status, state.Message)
			}
			if got := payloadOf(t, store); got != previous {
				t.Errorf("Expected previous payload kept, got %+v", got)
			}
			if f := tc.scraper.(*fakeScraper); f.calls != tc.calls {
				t.Errorf("Expected %d provider calls, got %d", tc.calls, f.calls)
			}
		})
	}
}

func TestRun_NoScraper(t *testing.T) {
	n, _ := newNode(t, flow.ScrapePayload{URL: "https://example.com"}, nil)
	if err := n.Run(context.Background()); !errors.Is(err, action.ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}
}
