package nodes

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/nodes/chat"
	"github.com/leofalp/flowcanvas/nodes/scrape"
	"github.com/leofalp/flowcanvas/nodes/sheet"
	"github.com/leofalp/flowcanvas/providers/ai"
	"github.com/leofalp/flowcanvas/providers/observability"
	scrapeapi "github.com/leofalp/flowcanvas/providers/scrape"
	"github.com/leofalp/flowcanvas/providers/sheets"
)

// ErrUnknownNode is returned by Set lookups for ids the set has not built.
var ErrUnknownNode = errors.New("unknown node")

// Node is the surface shared by every node kind.
type Node interface {
	ID() string
	Kind() flow.Kind
	// Input is the node's main editable field: URL, prompt or spreadsheet id.
	Input() string
	SetInput(value string)
	Run(ctx context.Context) error
	Trigger(ctx context.Context) bool
	State() action.State
	Wait(ctx context.Context) error
}

var (
	_ Node = (*scrape.Node)(nil)
	_ Node = (*chat.Node)(nil)
	_ Node = (*sheet.Node)(nil)
)

// Providers are the collaborators handed to new nodes. Any of them may be
// nil; the node then fails its action with a missing-credential error.
type Providers struct {
	Scraper      scrapeapi.Scraper
	Chat         ai.Provider
	Sheets       sheets.Writer
	DefaultModel string
	Observer     observability.Provider
}

// Set owns the runnable nodes of one store.
type Set struct {
	store     *flow.Store
	providers Providers

	mu    sync.RWMutex
	nodes map[string]Node
}

// NewSet builds a node for every node currently in store.
func NewSet(store *flow.Store, providers Providers) (*Set, error) {
	s := &Set{store: store, providers: providers, nodes: make(map[string]Node)}
	for _, n := range store.Nodes() {
		if _, err := s.bind(n.ID); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Store is the graph the set runs on.
func (s *Set) Store() *flow.Store { return s.store }

// Add inserts n into the store and builds its runnable node.
func (s *Set) Add(n flow.Node) (Node, error) {
	if err := s.store.AddNode(n); err != nil {
		return nil, err
	}
	return s.bind(n.ID)
}

// Get returns the node with the given id.
func (s *Set) Get(id string) (Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return n, nil
}

// All returns the nodes in store order.
func (s *Set) All() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Node
	for _, n := range s.store.Nodes() {
		if node, ok := s.nodes[n.ID]; ok {
			out = append(out, node)
		}
	}
	return out
}

// Inputs returns the snippets flowing into the node with the given id.
func (s *Set) Inputs(id string) ([]flow.Snippet, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	return s.store.Incoming(id), nil
}

func (s *Set) bind(id string) (Node, error) {
	scope, err := s.store.Scope(id)
	if err != nil {
		return nil, err
	}
	n, err := scope.Node()
	if err != nil {
		return nil, err
	}

	var node Node
	switch n.Kind() {
	case flow.KindScrape:
		node, err = scrape.New(scope, s.providers.Scraper, scrape.WithObserver(s.providers.Observer))
	case flow.KindChat:
		opts := []func(*chat.Options){chat.WithObserver(s.providers.Observer)}
		if s.providers.DefaultModel != "" {
			opts = append(opts, chat.WithDefaultModel(s.providers.DefaultModel))
		}
		node, err = chat.New(scope, s.providers.Chat, opts...)
	case flow.KindSheet:
		node, err = sheet.New(scope, s.providers.Sheets, sheet.WithObserver(s.providers.Observer))
	default:
		err = fmt.Errorf("unknown node kind %q", n.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("binding node %s: %w", id, err)
	}

	s.mu.Lock()
	s.nodes[id] = node
	s.mu.Unlock()
	return node, nil
}
