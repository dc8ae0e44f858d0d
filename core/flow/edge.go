package flow

import "fmt"

// Default handle names, matching the single input/output port each node
// exposes on the canvas.
const (
	HandleInput  = "input"
	HandleOutput = "output"
)

// Edge declares that Source's output feeds Target's input.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`

	// seq is assigned by the Store and pins snippet order to creation order.
	seq uint64
}

// NewEdge builds an edge between the default handles with a derived id.
func NewEdge(source, target string) Edge {
	return Edge{
		ID:           EdgeID(source, target),
		Source:       source,
		Target:       target,
		SourceHandle: HandleOutput,
		TargetHandle: HandleInput,
	}
}

// EdgeID derives the id used when an edge is created without one.
func EdgeID(source, target string) string {
	return fmt.Sprintf("e-%s-%s", source, target)
}
