// Package scrape is the scrape node: a URL input that publishes the page as
// Markdown for downstream nodes.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/providers/observability"
	scrapeapi "github.com/leofalp/flowcanvas/providers/scrape"
)

const (
	msgEnterURL  = "Please enter a URL"
	msgNoScraper = "no scraper configured"
)

// Options configures a Node.
type Options struct {
	Observer observability.Provider
}

// WithObserver sets the telemetry backend for the node's actions.
func WithObserver(observer observability.Provider) func(*Options) {
	return func(o *Options) { o.Observer = observer }
}

// Node scrapes its URL and stores {URL, Markdown} as its payload.
type Node struct {
	scope   *flow.Scope
	scraper scrapeapi.Scraper
	runner  *action.Runner

	mu  sync.Mutex
	url string
}

// New binds a scrape node to scope. The URL input starts from the payload.
func New(scope *flow.Scope, scraper scrapeapi.Scraper, opts ...func(*Options)) (*Node, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	n, err := scope.Node()
	if err != nil {
		return nil, err
	}
	payload, ok := n.Payload.(flow.ScrapePayload)
	if !ok {
		return nil, fmt.Errorf("%w: node %s is %s", flow.ErrKindMismatch, n.ID, n.Kind())
	}

	return &Node{
		scope:   scope,
		scraper: scraper,
		runner:  action.New(n.ID, string(flow.KindScrape), options.Observer),
		url:     payload.URL,
	}, nil
}

func (n *Node) ID() string { return n.scope.ID() }

func (n *Node) Kind() flow.Kind { return flow.KindScrape }

// URL returns the current input, which may differ from the published payload.
func (n *Node) URL() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.url
}

func (n *Node) SetURL(url string) {
	n.mu.Lock()
	n.url = url
	n.mu.Unlock()
}

// Input and SetInput expose the URL as the node's main editable field.
func (n *Node) Input() string { return n.URL() }

func (n *Node) SetInput(value string) { n.SetURL(value) }

func (n *Node) State() action.State { return n.runner.State() }

// Wait blocks until a triggered scrape settles.
func (n *Node) Wait(ctx context.Context) error { return n.runner.Wait(ctx) }

// Run scrapes synchronously.
func (n *Node) Run(ctx context.Context) error {
	return n.runner.Run(ctx, n.scrape)
}

// Trigger scrapes in the background; it is a no-op while a scrape is running.
func (n *Node) Trigger(ctx context.Context) bool {
	return n.runner.Trigger(ctx, n.scrape)
}

func (n *Node) scrape(ctx context.Context) error {
	url := strings.TrimSpace(n.URL())
	if url == "" {
		return fmt.Errorf("%w: %s", action.ErrValidation, msgEnterURL)
	}
	if n.scraper == nil {
		return fmt.Errorf("%w: %s", action.ErrMissingCredential, msgNoScraper)
	}

	result, err := n.scraper.Scrape(ctx, url)
	if err != nil {
		return action.Wrap(err, scrapeapi.ErrMissingAPIKey)
	}
	if result == nil || result.Markdown == "" {
		return action.Wrap(scrapeapi.ErrNoContent)
	}

	return n.scope.Replace(flow.ScrapePayload{URL: url, Markdown: result.Markdown})
}
