// Package sheet is the sheet-writer node. It turns upstream snippets into
// rows and writes them to a spreadsheet range.
package sheet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/core/merge"
	"github.com/leofalp/flowcanvas/providers/observability"
	"github.com/leofalp/flowcanvas/providers/sheets"
)

const (
	DefaultSheetName = "Sheet1"
	DefaultStartCell = "A1"

	msgEnterSpreadsheetID = "Please enter a Spreadsheet ID"
	msgNoInput            = "No input data available. Please connect and populate other nodes first."
	msgNoRows             = "No data to write to the sheet"
	msgNoWriter           = "no sheet writer configured"
)

// Options configures a Node.
type Options struct {
	Observer observability.Provider
}

// WithObserver sets the telemetry backend for the node's actions.
func WithObserver(observer observability.Provider) func(*Options) {
	return func(o *Options) { o.Observer = observer }
}

// Target is the editable destination of a write.
type Target struct {
	SpreadsheetID string
	SheetName     string
	StartCell     string
}

// Node writes its inputs to a sheet and records a summary of the last write.
type Node struct {
	scope  *flow.Scope
	writer sheets.Writer
	runner *action.Runner

	mu     sync.Mutex
	target Target
}

// New binds a sheet node to scope. Empty sheet name and start cell default to
// Sheet1 and A1.
func New(scope *flow.Scope, writer sheets.Writer, opts ...func(*Options)) (*Node, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	n, err := scope.Node()
	if err != nil {
		return nil, err
	}
	payload, ok := n.Payload.(flow.SheetPayload)
	if !ok {
		return nil, fmt.Errorf("%w: node %s is %s", flow.ErrKindMismatch, n.ID, n.Kind())
	}

	return &Node{
		scope:  scope,
		writer: writer,
		runner: action.New(n.ID, string(flow.KindSheet), options.Observer),
		target: withDefaults(Target{
			SpreadsheetID: payload.SpreadsheetID,
			SheetName:     payload.SheetName,
			StartCell:     payload.StartCell,
		}),
	}, nil
}

func withDefaults(t Target) Target {
	if t.SheetName == "" {
		t.SheetName = DefaultSheetName
	}
	if t.StartCell == "" {
		t.StartCell = DefaultStartCell
	}
	return t
}

func (n *Node) ID() string { return n.scope.ID() }

func (n *Node) Kind() flow.Kind { return flow.KindSheet }

func (n *Node) Target() Target {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// SetTarget replaces the destination; empty sheet name or cell fall back to
// the defaults.
func (n *Node) SetTarget(t Target) {
	n.mu.Lock()
	n.target = withDefaults(t)
	n.mu.Unlock()
}

func (n *Node) Input() string { return n.Target().SpreadsheetID }

func (n *Node) SetInput(value string) {
	n.mu.Lock()
	n.target.SpreadsheetID = value
	n.mu.Unlock()
}

func (n *Node) State() action.State { return n.runner.State() }

func (n *Node) Wait(ctx context.Context) error { return n.runner.Wait(ctx) }

// Inputs returns the snippets currently flowing into the node.
func (n *Node) Inputs() []flow.Snippet {
	return n.scope.Incoming()
}

// Rows previews what a write would send right now.
func (n *Node) Rows() [][]string {
	return merge.Rows(n.Inputs())
}

// Run writes synchronously.
func (n *Node) Run(ctx context.Context) error {
	return n.runner.Run(ctx, n.write)
}

// Trigger writes in the background; it is a no-op while a write is running.
func (n *Node) Trigger(ctx context.Context) bool {
	return n.runner.Trigger(ctx, n.write)
}

func (n *Node) write(ctx context.Context) error {
	target := n.Target()
	if strings.TrimSpace(target.SpreadsheetID) == "" {
		return fmt.Errorf("%w: %s", action.ErrValidation, msgEnterSpreadsheetID)
	}
	snippets := n.Inputs()
	if !flow.HasData(snippets) {
		return fmt.Errorf("%w: %s", action.ErrValidation, msgNoInput)
	}
	rows := merge.Rows(snippets)
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", action.ErrValidation, msgNoRows)
	}
	if n.writer == nil {
		return fmt.Errorf("%w: %s", action.ErrMissingCredential, msgNoWriter)
	}

	result, err := n.writer.Write(ctx, sheets.WriteRequest{
		SpreadsheetID: target.SpreadsheetID,
		SheetName:     target.SheetName,
		StartCell:     target.StartCell,
		Data:          rows,
	})
	if err != nil {
		return action.Wrap(err, sheets.ErrNotConfigured)
	}

	return n.scope.Replace(flow.SheetPayload{
		SpreadsheetID: target.SpreadsheetID,
		SheetName:     target.SheetName,
		StartCell:     target.StartCell,
		LastWriteInfo: WriteInfo(result.UpdatedRows, target),
	})
}

// WriteInfo is the summary stored after a successful write.
func WriteInfo(rows int64, t Target) string {
	return fmt.Sprintf("Successfully wrote %d rows to %s!%s", rows, t.SheetName, t.StartCell)
}
