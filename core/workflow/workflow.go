package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/core/parse"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot read.
var ErrUnsupportedFormat = errors.New("workflow: unsupported file format")

// Definition is a serialisable graph.
type Definition struct {
	Nodes []NodeDef `json:"nodes" yaml:"nodes"`
	Edges []EdgeDef `json:"edges" yaml:"edges"`
}

// NodeDef describes one node. Type accepts the aliases understood by
// flow.ParseKind. Data keys follow the payload's JSON field names.
type NodeDef struct {
	ID       string            `json:"id" yaml:"id"`
	Type     string            `json:"type" yaml:"type"`
	Position flow.Position     `json:"position" yaml:"position"`
	Data     map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// EdgeDef describes one connection. An empty ID is derived from the
// endpoints.
type EdgeDef struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// Default is the starting canvas: an unconnected scrape node and chat node.
func Default() Definition {
	return Definition{
		Nodes: []NodeDef{
			{ID: "scrape-1", Type: string(flow.KindScrape), Position: flow.Position{X: 100, Y: 100}},
			{ID: "chat-1", Type: string(flow.KindChat), Position: flow.Position{X: 100, Y: 400}},
		},
	}
}

// Load reads a definition from path, picking the decoder by extension:
// .json, .yaml/.yml or .hcl.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading workflow %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".hcl":
		return ParseHCL(data, path)
	default:
		return Definition{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseJSON decodes a JSON definition, repairing common hand-editing
// mistakes such as trailing commas and comments.
func ParseJSON(data []byte) (Definition, error) {
	def, err := parse.JSONAs[Definition](string(data))
	if err != nil {
		return Definition{}, fmt.Errorf("parsing workflow JSON: %w", err)
	}
	return def, nil
}

// ParseYAML decodes a YAML definition.
func ParseYAML(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parsing workflow YAML: %w", err)
	}
	return def, nil
}

// Build creates a store holding the definition's nodes and edges. Edges are
// connected in definition order, which fixes the order of their snippets.
func (d Definition) Build() (*flow.Store, error) {
	store := flow.NewStore()
	for _, nd := range d.Nodes {
		node, err := nd.node()
		if err != nil {
			return nil, err
		}
		if err := store.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, ed := range d.Edges {
		if ed.Source == "" || ed.Target == "" {
			return nil, fmt.Errorf("workflow: edge %q needs a source and a target", ed.ID)
		}
		store.Connect(ed.edge())
	}
	return store, nil
}

func (nd NodeDef) node() (flow.Node, error) {
	if nd.ID == "" {
		return flow.Node{}, errors.New("workflow: node without id")
	}
	kind, err := flow.ParseKind(nd.Type)
	if err != nil {
		return flow.Node{}, fmt.Errorf("workflow: node %s: %w", nd.ID, err)
	}
	return flow.Node{ID: nd.ID, Position: nd.Position, Payload: payloadFromData(kind, nd.Data)}, nil
}

func payloadFromData(kind flow.Kind, data map[string]string) flow.Payload {
	switch kind {
	case flow.KindChat:
		return flow.ChatPayload{Prompt: data["prompt"], Model: data["model"], Response: data["response"]}
	case flow.KindSheet:
		return flow.SheetPayload{
			SpreadsheetID: data["spreadsheetId"],
			SheetName:     data["sheetName"],
			StartCell:     data["startCell"],
			LastWriteInfo: data["lastWriteInfo"],
		}
	default:
		return flow.ScrapePayload{URL: data["url"], Markdown: data["markdown"]}
	}
}

func (ed EdgeDef) edge() flow.Edge {
	e := flow.NewEdge(ed.Source, ed.Target)
	if ed.ID != "" {
		e.ID = ed.ID
	}
	if ed.SourceHandle != "" {
		e.SourceHandle = ed.SourceHandle
	}
	if ed.TargetHandle != "" {
		e.TargetHandle = ed.TargetHandle
	}
	return e
}

// FromStore captures the current graph as a definition.
func FromStore(store *flow.Store) Definition {
	snap := store.Snapshot()
	def := Definition{}
	for _, n := range snap.Nodes {
		def.Nodes = append(def.Nodes, NodeDef{
			ID:       n.ID,
			Type:     string(n.Kind()),
			Position: n.Position,
			Data:     dataFromPayload(n.Payload),
		})
	}
	for _, e := range snap.Edges {
		def.Edges = append(def.Edges, EdgeDef{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		})
	}
	return def
}

func dataFromPayload(p flow.Payload) map[string]string {
	data := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			data[key] = value
		}
	}
	switch v := p.(type) {
	case flow.ScrapePayload:
		set("url", v.URL)
		set("markdown", v.Markdown)
	case flow.ChatPayload:
		set("prompt", v.Prompt)
		set("model", v.Model)
		set("response", v.Response)
	case flow.SheetPayload:
		set("spreadsheetId", v.SpreadsheetID)
		set("sheetName", v.SheetName)
		set("startCell", v.StartCell)
		set("lastWriteInfo", v.LastWriteInfo)
	}
	if len(data) == 0 {
		return nil
	}
	return data
}
