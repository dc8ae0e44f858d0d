package merge

import (
	"strings"

	"github.com/leofalp/flowcanvas/core/flow"
)

const (
	// Placeholder marks where upstream context goes in a prompt template.
	Placeholder = "{input}"
	// Separator sits between snippets, and between context and request.
	Separator = "\n\n---\n\n"
	// UserRequestLabel introduces the user's own prompt when context is prepended.
	UserRequestLabel = "User Request:\n"
)

// Context renders snippets as "[label]\ncontent" blocks joined by Separator.
func Context(snippets []flow.Snippet) string {
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, "["+s.Label+"]\n"+s.Content)
	}
	return strings.Join(parts, Separator)
}

// Prompt combines a user prompt with upstream snippets.
//
// Without snippets the prompt is returned verbatim. If it contains
// Placeholder, every occurrence is replaced by the rendered context;
// otherwise the context is prepended, followed by Separator and
// UserRequestLabel.
func Prompt(userPrompt string, snippets []flow.Snippet) string {
	if len(snippets) == 0 {
		return userPrompt
	}
	block := Context(snippets)
	if strings.Contains(userPrompt, Placeholder) {
		return strings.ReplaceAll(userPrompt, Placeholder, block)
	}
	return block + Separator + UserRequestLabel + userPrompt
}
