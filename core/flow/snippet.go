package flow

// PreviewLength is the number of characters kept in Snippet.Preview.
const PreviewLength = 150

// Labels attached to snippets by source kind.
const (
	LabelScraped    = "Scraped Content"
	LabelAIResponse = "AI Response"
)

// Snippet is a read-only view of one upstream node's current output.
type Snippet struct {
	Kind     Kind   `json:"type"`
	SourceID string `json:"sourceId"`
	Label    string `json:"label"`
	Content  string `json:"content"`
	Preview  string `json:"preview"`
}

// Resolve returns one snippet per edge targeting targetID whose source node
// exists and currently has output, in edge order. Edges to missing nodes and
// sources without output contribute nothing. A nil result means "no data".
func Resolve(targetID string, nodes []Node, edges []Edge) []Snippet {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var out []Snippet
	for _, e := range edges {
		if e.Target != targetID {
			continue
		}
		source, ok := byID[e.Source]
		if !ok {
			continue
		}
		if snip, ok := Extract(source); ok {
			out = append(out, snip)
		}
	}
	return out
}

// Extract derives the snippet a node contributes downstream, if any.
func Extract(n Node) (Snippet, bool) {
	var label, content string
	switch p := n.Payload.(type) {
	case ScrapePayload:
		label, content = LabelScraped, p.Markdown
	case ChatPayload:
		label, content = LabelAIResponse, p.Response
	case SheetPayload:
		return Snippet{}, false
	default:
		return Snippet{}, false
	}
	if content == "" {
		return Snippet{}, false
	}
	return Snippet{
		Kind:     n.Kind(),
		SourceID: n.ID,
		Label:    label,
		Content:  content,
		Preview:  Preview(content),
	}, true
}

// HasData reports whether any upstream output is available.
func HasData(snippets []Snippet) bool {
	return len(snippets) > 0
}

// Preview truncates content to PreviewLength characters, marking the cut
// with "...".
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + "..."
}
