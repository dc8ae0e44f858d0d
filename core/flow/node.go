package flow

import (
	"encoding/json"
	"fmt"
)

// Kind identifies what a node does. The set is closed.
type Kind string

const (
	KindScrape Kind = "scrape"
	KindChat   Kind = "chat"
	KindSheet  Kind = "sheet-writer"
)

// ParseKind accepts the canonical names plus the provider-flavoured aliases
// used by older workflow files ("firecrawl", "openai", "google-sheets").
func ParseKind(s string) (Kind, error) {
	switch s {
	case string(KindScrape), "firecrawl":
		return KindScrape, nil
	case string(KindChat), "openai":
		return KindChat, nil
	case string(KindSheet), "sheet", "google-sheets", "googleSheets":
		return KindSheet, nil
	default:
		return "", fmt.Errorf("unknown node kind %q", s)
	}
}

// Payload is the per-node state bag. The concrete type decides the node kind;
// only the types in this package implement it.
type Payload interface {
	Kind() Kind
	sealed()
}

// ScrapePayload is the state of a scrape node.
type ScrapePayload struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Markdown string `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// ChatPayload is the state of a chat node.
type ChatPayload struct {
	Prompt   string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
}

// SheetPayload is the state of a sheet-writer node.
type SheetPayload struct {
	SpreadsheetID string `json:"spreadsheetId,omitempty" yaml:"spreadsheetId,omitempty"`
	SheetName     string `json:"sheetName,omitempty" yaml:"sheetName,omitempty"`
	StartCell     string `json:"startCell,omitempty" yaml:"startCell,omitempty"`
	LastWriteInfo string `json:"lastWriteInfo,omitempty" yaml:"lastWriteInfo,omitempty"`
}

func (ScrapePayload) Kind() Kind { return KindScrape }
func (ChatPayload) Kind() Kind   { return KindChat }
func (SheetPayload) Kind() Kind  { return KindSheet }

func (ScrapePayload) sealed() {}
func (ChatPayload) sealed()   {}
func (SheetPayload) sealed()  {}

// EmptyPayload returns the zero payload for kind.
func EmptyPayload(kind Kind) (Payload, error) {
	switch kind {
	case KindScrape:
		return ScrapePayload{}, nil
	case KindChat:
		return ChatPayload{}, nil
	case KindSheet:
		return SheetPayload{}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

// Position is canvas metadata. Nothing in this module interprets it.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is one unit of the workflow graph.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Payload  Payload  `json:"data"`
}

// Kind returns the kind carried by the node's payload.
func (n Node) Kind() Kind {
	if n.Payload == nil {
		return ""
	}
	return n.Payload.Kind()
}

// NewNode builds a node with the empty payload for kind.
func NewNode(id string, kind Kind, pos Position) (Node, error) {
	payload, err := EmptyPayload(kind)
	if err != nil {
		return Node{}, err
	}
	return Node{ID: id, Position: pos, Payload: payload}, nil
}

// MarshalJSON renders the node the way the canvas expects it:
// {"id", "type", "position", "data"}.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string   `json:"id"`
		Type     Kind     `json:"type"`
		Position Position `json:"position"`
		Data     Payload  `json:"data"`
	}{n.ID, n.Kind(), n.Position, n.Payload})
}
