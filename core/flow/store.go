package flow

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrNodeNotFound is returned when an id does not name a node in the store.
	ErrNodeNotFound = errors.New("flow: node not found")
	// ErrDuplicateNode is returned when adding a node whose id is taken.
	ErrDuplicateNode = errors.New("flow: duplicate node id")
	// ErrKindMismatch is returned when a payload update would change a node's kind.
	ErrKindMismatch = errors.New("flow: payload kind does not match node kind")
)

// Store is the process-wide graph. It is safe for concurrent use; every
// write replaces one node's payload or appends to the graph, never edits in
// place.
type Store struct {
	mu      sync.RWMutex
	nodes   map[string]Node
	order   []string
	edges   []Edge
	nextSeq uint64
	version uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[string]Node)}
}

// AddNode inserts n. The node must carry a payload.
func (s *Store) AddNode(n Node) error {
	if n.ID == "" {
		return errors.New("flow: node id is empty")
	}
	if n.Payload == nil {
		return fmt.Errorf("flow: node %q has no payload", n.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	s.nodes[n.ID] = n
	s.order = append(s.order, n.ID)
	s.version++
	return nil
}

// RemoveNode deletes a node. Edges pointing at or from it are kept; the
// resolver treats them as dangling and ignores them.
func (s *Store) RemoveNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(other string) bool { return other == id })
	s.version++
	return nil
}

// Connect appends e. Endpoints are not checked: an edge may be loaded before
// its nodes, or outlive them. An empty id is derived from the endpoints.
// Connecting the same id twice is a no-op.
func (s *Store) Connect(e Edge) Edge {
	if e.ID == "" {
		e.ID = EdgeID(e.Source, e.Target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.edges {
		if existing.ID == e.ID {
			return existing
		}
	}
	s.nextSeq++
	e.seq = s.nextSeq
	s.edges = append(s.edges, e)
	s.version++
	return e
}

// Disconnect removes the edge with the given id and reports whether it existed.
func (s *Store) Disconnect(edgeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.edges)
	s.edges = slices.DeleteFunc(s.edges, func(e Edge) bool { return e.ID == edgeID })
	if len(s.edges) == before {
		return false
	}
	s.version++
	return true
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (s *Store) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Edges returns all edges in creation order.
func (s *Store) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.edges)
}

// Snapshot is a consistent copy of the whole graph.
type Snapshot struct {
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
	Version uint64 `json:"version"`
}

// Snapshot returns nodes and edges read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes := make([]Node, 0, len(s.order))
	for _, id := range s.order {
		nodes = append(nodes, s.nodes[id])
	}
	return Snapshot{Nodes: nodes, Edges: slices.Clone(s.edges), Version: s.version}
}

// Version increases on every mutation. Front ends poll it to know when to
// re-render.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Incoming resolves the snippets flowing into id from the current graph.
func (s *Store) Incoming(id string) []Snippet {
	snap := s.Snapshot()
	return Resolve(id, snap.Nodes, snap.Edges)
}

// Scope returns the write handle for the node with the given id.
func (s *Store) Scope(id string) (*Scope, error) {
	if _, ok := s.Node(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return &Scope{store: s, id: id}, nil
}

func (s *Store) replacePayload(id string, p Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if p == nil || p.Kind() != n.Kind() {
		return fmt.Errorf("%w: node %s is %s", ErrKindMismatch, id, n.Kind())
	}
	n.Payload = p
	s.nodes[id] = n
	s.version++
	return nil
}

// Scope is a node's handle on the store: full read access, write access to
// its own payload only.
type Scope struct {
	store *Store
	id    string
}

// ID is the node this scope writes to.
func (sc *Scope) ID() string { return sc.id }

// Store exposes the read side of the graph.
func (sc *Scope) Store() *Store { return sc.store }

// Node returns the scoped node's current state.
func (sc *Scope) Node() (Node, error) {
	n, ok := sc.store.Node(sc.id)
	if !ok {
		return Node{}, fmt.Errorf("%w: %s", ErrNodeNotFound, sc.id)
	}
	return n, nil
}

// Replace swaps the node's payload for p. p must be of the node's kind.
func (sc *Scope) Replace(p Payload) error {
	return sc.store.replacePayload(sc.id, p)
}

// Incoming resolves the snippets flowing into the scoped node.
func (sc *Scope) Incoming() []Snippet {
	return sc.store.Incoming(sc.id)
}
