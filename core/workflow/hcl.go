package workflow

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/leofalp/flowcanvas/core/flow"
)

type hclFile struct {
	Nodes []*hclNode `hcl:"node,block"`
	Edges []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	ID   string            `hcl:"id,label"`
	Type string            `hcl:"type"`
	X    float64           `hcl:"x,optional"`
	Y    float64           `hcl:"y,optional"`
	Data map[string]string `hcl:"data,optional"`
}

type hclEdge struct {
	ID           string `hcl:"id,optional"`
	Source       string `hcl:"source"`
	Target       string `hcl:"target"`
	SourceHandle string `hcl:"source_handle,optional"`
	TargetHandle string `hcl:"target_handle,optional"`
}

// ParseHCL decodes an HCL definition. filename is used in diagnostics only.
func ParseHCL(data []byte, filename string) (Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return Definition{}, fmt.Errorf("failed to parse HCL workflow %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return Definition{}, fmt.Errorf("failed to decode HCL workflow %s: %w", filename, diags)
	}

	def := Definition{}
	for _, n := range parsed.Nodes {
		def.Nodes = append(def.Nodes, NodeDef{
			ID:       n.ID,
			Type:     n.Type,
			Position: flow.Position{X: n.X, Y: n.Y},
			Data:     n.Data,
		})
	}
	for _, e := range parsed.Edges {
		def.Edges = append(def.Edges, EdgeDef{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		})
	}
	return def, nil
}
